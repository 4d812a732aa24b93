package services

import (
	"context"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
)

type StatisticsService interface {
	Standings(ctx context.Context, championshipID int) ([]*models.TeamStanding, error)
}

type statisticsService struct {
	statistics    repositories.StatisticsRepository
	championships repositories.ChampionshipRepository
}

func NewStatisticsService(statistics repositories.StatisticsRepository, championships repositories.ChampionshipRepository) StatisticsService {
	return &statisticsService{
		statistics:    statistics,
		championships: championships,
	}
}

func (s *statisticsService) Standings(ctx context.Context, championshipID int) ([]*models.TeamStanding, error) {
	if _, err := s.championships.GetByID(ctx, championshipID); err != nil {
		return nil, err
	}
	return s.statistics.Standings(ctx, championshipID)
}
