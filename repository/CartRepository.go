package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"okpups/entities"
	"okpups/models"

	"github.com/redis/go-redis/v9"
)

// Checkout flow states kept alongside the cart blob.
const (
	FlowStateCart     = "cart"
	FlowStateCheckout = "checkout"
)

const cartTTL = 24 * time.Hour

type CartRepository interface {
	SetCart(cartSessionId string, cart entities.Cart) (err error)
	GetCart(cartSessionId string) (cart entities.Cart)
	SetFlowState(cartSessionId string, state string) (err error)
	GetFlowState(cartSessionId string) (state string)
}

type CartRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewCartRepository(redis_conn *redis.Client, _ctx context.Context) (CartRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CartRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (c *CartRepo) SetCart(cartSessionId string, cart entities.Cart) (err error) {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		log.Printf("SetCart: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	err = c.rdb.Set(c.ctx, "cart:"+cartSessionId, jsonData, cartTTL).Err()
	if err != nil {
		log.Printf("SetCart: %v", err)
		err = models.ErrServerError
	}
	return
}

// GetCart never fails: a missing key, a transport error, or a blob that no
// longer parses all load as an empty cart. The session just starts over
// unpersisted.
func (c *CartRepo) GetCart(cartSessionId string) (cart entities.Cart) {
	val, e := c.rdb.Get(c.ctx, "cart:"+cartSessionId).Result()
	if e != nil {
		if e != redis.Nil {
			log.Printf("GetCart: %v", e)
		}
		return
	}
	if e = json.Unmarshal([]byte(val), &cart); e != nil {
		log.Printf("GetCart: Unmarshal: %v", e)
		cart = entities.Cart{}
	}
	return
}

func (c *CartRepo) SetFlowState(cartSessionId string, state string) (err error) {
	err = c.rdb.Set(c.ctx, "checkout:"+cartSessionId, state, cartTTL).Err()
	if err != nil {
		log.Printf("SetFlowState: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CartRepo) GetFlowState(cartSessionId string) (state string) {
	state, e := c.rdb.Get(c.ctx, "checkout:"+cartSessionId).Result()
	if e != nil {
		if e != redis.Nil {
			log.Printf("GetFlowState: %v", e)
		}
		state = FlowStateCart
	}
	return
}
