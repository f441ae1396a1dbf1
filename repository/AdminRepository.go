package repository

import (
	"database/sql"
	"errors"
	"log"

	"okpups/models"

	"golang.org/x/crypto/bcrypt"
)

type AdminRepository interface {
	GetAdminById(id string) (models.Admin_db, bool, error)
	GetAdminByEmail(email string) (models.Admin_db, bool, error)
	AddAdmin(aModel models.Admin_db) (err error)
	EncryptPassword(password string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
}

type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepository(conn *sql.DB) (AdminRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &AdminRepo{
		db: conn,
	}, nil
}

func (a *AdminRepo) GetAdminById(id string) (aModel models.Admin_db, exists bool, err error) {
	row := a.db.QueryRow("SELECT Id, Email, Password, Name FROM Admins WHERE Id = $1", id)
	err = row.Scan(&aModel.Id, &aModel.Email, &aModel.Password, &aModel.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Printf("GetAdminById: %v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (a *AdminRepo) GetAdminByEmail(email string) (aModel models.Admin_db, exists bool, err error) {
	row := a.db.QueryRow("SELECT Id, Email, Password, Name FROM Admins WHERE Email = $1", email)
	err = row.Scan(&aModel.Id, &aModel.Email, &aModel.Password, &aModel.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Printf("GetAdminByEmail: %v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (a *AdminRepo) AddAdmin(aModel models.Admin_db) (err error) {
	_, e := a.db.Exec("INSERT INTO Admins (Id, Email, Password, Name) VALUES ($1, $2, $3, $4)",
		aModel.Id, aModel.Email, aModel.Password, aModel.Name)
	if e != nil {
		log.Printf("AddAdmin: %v", e)
		err = models.ErrServerError
	}
	return
}

func (a *AdminRepo) EncryptPassword(password string) (hashedPassword string, err error) {
	var hashed []byte
	hashed, err = bcrypt.GenerateFromPassword([]byte(password), 8)
	if err != nil {
		log.Printf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashedPassword = string(hashed)
	return
}

func (a *AdminRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	return err == nil
}
