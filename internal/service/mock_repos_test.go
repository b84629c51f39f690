package service

import (
	"context"
	"errors"

	"github.com/campagnoli/controle-ferroviario/internal/model"
	"github.com/campagnoli/controle-ferroviario/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Registry
	loadErr  error
	saveErr  error
	saves    int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Registry)}
}

func (m *mockSessionRepo) Load(_ context.Context, sessionID string) (*model.Registry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if reg, ok := m.sessions[sessionID]; ok {
		return reg.Clone(), nil
	}
	return &model.Registry{}, nil
}

func (m *mockSessionRepo) Save(_ context.Context, sessionID string, reg *model.Registry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.sessions[sessionID] = reg.Clone()
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func newMockRepository() (*repository.Repository, *mockSessionRepo) {
	sessions := newMockSessionRepo()
	return &repository.Repository{Session: sessions}, sessions
}
