package reco

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationPolicyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_ranking_policy_total",
			Help: "Count of recommendation requests by ranking policy (cold_start or warm).",
		},
		[]string{"policy"},
	)

	CandidatePoolBroadenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reco_candidate_pool_broadened_total",
			Help: "Count of requests whose filtered candidate pool fell below the minimum and was broadened.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationPolicyTotal,
		CandidatePoolBroadenedTotal,
	)
}
