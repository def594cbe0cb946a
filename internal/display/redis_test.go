package display

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
	"github.com/stretchr/testify/suite"
)

type RedisPanelTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	panel   *RedisPanel
	testNow time.Time
}

func (s *RedisPanelTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	panel, err := NewRedisPanel(context.Background(), RedisConfig{Client: s.client, Key: "test:panel"})
	s.Require().NoError(err)
	s.testNow = time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)
	panel.now = func() time.Time { return s.testNow }
	s.panel = panel
}

func (s *RedisPanelTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisPanelTestSuite(t *testing.T) {
	suite.Run(t, new(RedisPanelTestSuite))
}

func (s *RedisPanelTestSuite) TestReadEmpty() {
	got, err := s.panel.Read(context.Background())
	s.Require().NoError(err)
	s.False(got.Loaded())
	s.Empty(got.Content)
}

func (s *RedisPanelTestSuite) TestWriteThenRead() {
	ctx := context.Background()
	s.Require().NoError(s.panel.WriteOutput(ctx, `<div class="loading"></div>`))
	s.Require().NoError(s.panel.WriteOutput(ctx, `<div class="player-card"></div>`))

	got, err := s.panel.Read(ctx)
	s.Require().NoError(err)
	s.Equal(`<div class="player-card"></div>`, got.Content)
	s.Equal(uint64(2), got.Version)
	s.True(got.UpdatedAt.Equal(s.testNow))

	s.Equal("2", s.mr.HGet("test:panel", "version"))
}

func (s *RedisPanelTestSuite) TestPanelsShareKey() {
	ctx := context.Background()
	other, err := NewRedisPanel(ctx, RedisConfig{Client: s.client, Key: "test:panel"})
	s.Require().NoError(err)

	s.Require().NoError(s.panel.WriteOutput(ctx, "first"))
	s.Require().NoError(other.WriteOutput(ctx, "second"))

	got, err := s.panel.Read(ctx)
	s.Require().NoError(err)
	s.Equal("second", got.Content)
	s.Equal(uint64(2), got.Version)
}

func (s *RedisPanelTestSuite) TestWriteFailsWhenRedisIsDown() {
	s.mr.Close()

	err := s.panel.WriteOutput(context.Background(), "lost")
	s.Require().Error(err)
	s.True(crerr.Is(err, usecase.ErrDependencyUnavailable))
}

func (s *RedisPanelTestSuite) TestRequiresClient() {
	_, err := NewRedisPanel(context.Background(), RedisConfig{})
	s.True(crerr.Is(err, usecase.ErrInvalidInput))
}
