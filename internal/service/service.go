// Package service implements the conversation and message managers.
package service

import (
	"github.com/convoapp/convo/config"
	"github.com/convoapp/convo/internal/logging"
	store "github.com/convoapp/convo/internal/repository"
)

type Service struct {
	store  store.Store
	config *config.Config
	logs   *logging.Recorder
}

func New(store store.Store, cfg *config.Config, logs *logging.Recorder) *Service {
	if logs == nil {
		logs = logging.NewRecorder(nil)
	}
	return &Service{
		store:  store,
		config: cfg,
		logs:   logs,
	}
}
