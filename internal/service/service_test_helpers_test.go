package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"roomi/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.VerificationCode{},
		&entity.Hostel{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

type sentCode struct {
	email   string
	code    string
	purpose entity.VerificationPurpose
}

type fakeNotifier struct {
	mutex sync.Mutex
	sends []sentCode
	err   error
}

func (n *fakeNotifier) SendVerificationCode(_ context.Context, email, code string, purpose entity.VerificationPurpose) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sends = append(n.sends, sentCode{email: email, code: code, purpose: purpose})
	return nil
}

func (n *fakeNotifier) last(t *testing.T) sentCode {
	t.Helper()
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if len(n.sends) == 0 {
		t.Fatal("notifier received no sends")
	}
	return n.sends[len(n.sends)-1]
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}
