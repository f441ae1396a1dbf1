package services

import (
	"log"
	"time"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"

	"github.com/google/uuid"
)

type AdminService struct {
	ar repository.AdminRepository
	sr repository.SessionRepository
}

func NewAdminService(adminRepo repository.AdminRepository, sessionRepo repository.SessionRepository) AdminService {
	return AdminService{
		ar: adminRepo,
		sr: sessionRepo,
	}
}

func (ads *AdminService) Login(email string, password string) (admin entities.Admin, sessionId string, err error) {
	aModel, exists, err := ads.ar.GetAdminByEmail(email)
	if err != nil {
		return
	}
	if !exists {
		log.Printf("Login: admin not found")
		err = models.ErrUnautorized
		return
	}
	if !ads.ar.VerifyPassword(aModel.Password, password) {
		log.Printf("Login: wrong password")
		err = models.ErrUnautorized
		return
	}
	sessionId, err = ads.sr.CreateSession(aModel.Id)
	if err != nil {
		return
	}
	admin = entities.Admin{Id: aModel.Id, Email: aModel.Email, Name: aModel.Name}
	return
}

func (ads *AdminService) Logout(sessionId string) (err error) {
	err = ads.sr.DeleteSession(sessionId)
	return
}

// Me resolves the session to an admin identity, sliding the session
// expiry. The "who am I" check behind every admin screen.
func (ads *AdminService) Me(sessionId string) (admin entities.Admin, err error) {
	adminId, exists, err := ads.sr.GetSessionAdmin(sessionId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrUnautorized
		return
	}
	aModel, exists, err := ads.ar.GetAdminById(adminId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrUnautorized
		return
	}
	if e := ads.sr.RefreshSession(sessionId, 30*time.Minute); e != nil {
		log.Printf("Me: %v", e)
	}
	admin = entities.Admin{Id: aModel.Id, Email: aModel.Email, Name: aModel.Name}
	return
}

func (ads *AdminService) CheckAuth(sessionId string) (bool, error) {
	return ads.sr.CheckSession(sessionId)
}

// Seed creates the bootstrap admin account if no account with that email
// exists yet. Used at startup from the environment.
func (ads *AdminService) Seed(email string, password string, name string) (err error) {
	_, exists, err := ads.ar.GetAdminByEmail(email)
	if err != nil || exists {
		return
	}
	hashed, err := ads.ar.EncryptPassword(password)
	if err != nil {
		return
	}
	err = ads.ar.AddAdmin(models.Admin_db{
		Id:       uuid.NewString(),
		Email:    email,
		Password: hashed,
		Name:     name,
	})
	return
}
