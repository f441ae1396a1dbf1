package repository

import (
	"context"
	"errors"
	"log"

	"okpups/models"

	"github.com/redis/go-redis/v9"
)

// LikeRepository tracks anonymous likes. One like per client id per animal:
// the set membership is the idempotence rule behind the alreadyLiked flag.
type LikeRepository interface {
	AddLike(animalId string, clientId string) (already bool, err error)
	LikesCount(animalId string) (count int, err error)
}

type LikeRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewLikeRepository(redis_conn *redis.Client, _ctx context.Context) (LikeRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &LikeRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (l *LikeRepo) AddLike(animalId string, clientId string) (already bool, err error) {
	added, e := l.rdb.SAdd(l.ctx, "likes:"+animalId, clientId).Result()
	if e != nil {
		log.Printf("AddLike: %v", e)
		err = models.ErrServerError
		return
	}
	already = added == 0
	return
}

func (l *LikeRepo) LikesCount(animalId string) (count int, err error) {
	n, e := l.rdb.SCard(l.ctx, "likes:"+animalId).Result()
	if e != nil {
		log.Printf("LikesCount: %v", e)
		err = models.ErrServerError
		return
	}
	count = int(n)
	return
}
