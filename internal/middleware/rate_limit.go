package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3

	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
)

// LoginRateLimit limite les connexions échouées par email.
// Sans client Redis, la limite est désactivée.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		email := strings.ToLower(strings.TrimSpace(input.Email))
		key := "login_attempts:" + email
		cooldownKey := "login_cooldown:" + email

		if rejectDuringCooldown(c, rdb, cooldownKey, "Too many failed attempts. Try again in %d minutes") {
			return
		}

		attempts, err := rdb.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			logRedisErr("login attempts", err)
		}
		if attempts >= LoginMaxAttempts {
			logRedisErr("login cooldown", rdb.Set(ctx, cooldownKey, "1", LoginCooldown).Err())
			logRedisErr("login reset", rdb.Del(ctx, key).Err())

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Account locked for %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			logRedisErr("login incr", rdb.Incr(ctx, key).Err())
			logRedisErr("login expire", rdb.Expire(ctx, key, LoginCooldown).Err())
		case http.StatusOK:
			logRedisErr("login reset", rdb.Del(ctx, key, cooldownKey).Err())
		}
	}
}

// RegisterRateLimit limite les inscriptions réussies par IP
func RegisterRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		ip := c.ClientIP()
		key := "register_attempts:" + ip
		cooldownKey := "register_cooldown:" + ip

		if rejectDuringCooldown(c, rdb, cooldownKey, "Too many sign-ups. Try again in %d minutes") {
			return
		}

		attempts, err := rdb.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			logRedisErr("register attempts", err)
		}
		if attempts >= RegisterMaxAttempts {
			logRedisErr("register cooldown", rdb.Set(ctx, cooldownKey, "1", RegisterCooldown).Err())
			logRedisErr("register reset", rdb.Del(ctx, key).Err())

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many sign-ups. Try again in %d minutes", int(RegisterCooldown.Minutes())),
				"retry_after": int(RegisterCooldown.Seconds()),
			})
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusCreated {
			logRedisErr("register incr", rdb.Incr(ctx, key).Err())
			logRedisErr("register expire", rdb.Expire(ctx, key, RegisterCooldown).Err())
		}
	}
}

// logRedisErr signale un Redis défaillant : la limite est alors inopérante
func logRedisErr(op string, err error) {
	if err != nil {
		log.Printf("⚠️ Rate limit Redis (%s): %v", op, err)
	}
}

func rejectDuringCooldown(c *gin.Context, rdb *redis.Client, cooldownKey, format string) bool {
	ttl, err := rdb.TTL(c.Request.Context(), cooldownKey).Result()
	if err != nil {
		logRedisErr("cooldown ttl", err)
		return false
	}
	if ttl <= 0 {
		return false
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       fmt.Sprintf(format, int(ttl.Minutes())+1),
		"retry_after": int(ttl.Seconds()),
	})
	return true
}
