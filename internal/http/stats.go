package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatsController serves aggregate statistics, achievements and dashboard
// data derived from the current catalog snapshot.
type StatsController struct {
	provider StatsProvider
	catalog  BookStore
}

func NewStatsController(provider StatsProvider, catalog BookStore) *StatsController {
	return &StatsController{provider: provider, catalog: catalog}
}

func (controller *StatsController) GetStatistics(c *gin.Context) {
	stats := controller.provider.CalculateStatistics(controller.catalog.GetAllBooks())
	c.IndentedJSON(http.StatusOK, stats)
}

func (controller *StatsController) GetAchievements(c *gin.Context) {
	achievements := controller.provider.CheckAchievements(controller.catalog.GetAllBooks())
	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"achievements": achievements,
		"unlocked":     unlocked,
		"total":        len(achievements),
	})
}

func (controller *StatsController) GetKPIs(c *gin.Context) {
	kpis := controller.provider.GetKPIData(controller.catalog.GetAllBooks())
	c.IndentedJSON(http.StatusOK, gin.H{"kpis": kpis})
}

func (controller *StatsController) GetGenreDistribution(c *gin.Context) {
	genres := controller.provider.GetGenreDistribution(controller.catalog.GetAllBooks())
	c.IndentedJSON(http.StatusOK, gin.H{"genres": genres})
}
