// Package metrics resolve estatísticas de exibição para os dashboards.
// Toda consulta ao banco pode falhar; nesse caso o resolvedor substitui o
// valor por um fallback determinístico dentro da faixa pedida, de modo que
// o chamador nunca recebe erro nem estatística vazia.
package metrics

import (
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/pkg/log"
	"github.com/vfg2006/bizhub-api/pkg/utils"
)

const UnknownChoice = "unknown"

type Resolver interface {
	// ResolveCount conta registros do log de atividades (source vazio conta
	// tudo) e restringe o resultado à faixa [min, max]
	ResolveCount(workspaceID, source string, min, max int64) int64
	// ResolvePercentage calcula a média das métricas do tipo percentage e
	// restringe o resultado à faixa [min, max]
	ResolvePercentage(workspaceID string, min, max float64) float64
	// ResolveChoice retorna a categoria mais frequente do log de atividades
	// quando ela pertence a candidates; caso contrário, candidates[0]
	ResolveChoice(workspaceID string, candidates []string) string
}

type ResolverService struct {
	ActivityRepository repository.ActivityRepository
	MetricRepository   repository.MetricRepository
}

func NewResolverService(
	activityRepository repository.ActivityRepository,
	metricRepository repository.MetricRepository,
) Resolver {
	return &ResolverService{
		ActivityRepository: activityRepository,
		MetricRepository:   metricRepository,
	}
}

func (s *ResolverService) ResolveCount(workspaceID, source string, min, max int64) int64 {
	count, err := s.ActivityRepository.CountBySource(workspaceID, source)
	if err != nil {
		log.L.WithError(err).WithFields(log.Fields{
			"workspace_id": workspaceID,
			"source":       source,
		}).Warn("resolver: falha ao contar atividades, usando fallback")
		return midpointInt(min, max)
	}

	// Zero linhas ainda passa pelo clamp: 0 sobe para min, nunca mostramos
	// uma estatística vazia
	return clampInt(count, min, max)
}

func (s *ResolverService) ResolvePercentage(workspaceID string, min, max float64) float64 {
	avg, err := s.MetricRepository.AveragePercentage(workspaceID)
	if err != nil {
		log.L.WithError(err).WithField("workspace_id", workspaceID).
			Warn("resolver: falha ao calcular média de percentuais, usando fallback")
		return midpointFloat(min, max)
	}

	// Arredonda antes do clamp: a ordem inversa pode empurrar o valor para
	// fora da faixa quando os limites têm mais de duas casas decimais
	return clampFloat(utils.RoundWithTwoDecimalPlace(avg), min, max)
}

func (s *ResolverService) ResolveChoice(workspaceID string, candidates []string) string {
	if len(candidates) == 0 {
		return UnknownChoice
	}

	top, err := s.ActivityRepository.TopCategory(workspaceID)
	if err != nil {
		log.L.WithError(err).WithField("workspace_id", workspaceID).
			Warn("resolver: falha ao buscar categoria mais frequente, usando fallback")
		return candidates[0]
	}

	for _, candidate := range candidates {
		if candidate == top {
			return top
		}
	}

	return candidates[0]
}

func clampInt(value, min, max int64) int64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func midpointInt(min, max int64) int64 {
	return min + (max-min)/2
}

func midpointFloat(min, max float64) float64 {
	return (min + max) / 2
}
