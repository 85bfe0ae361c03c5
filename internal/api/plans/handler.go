package plans

import (
	"net/http"

	"historinhas-api/database"
	"historinhas-api/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

type PlanDTO struct {
	Type     string            `json:"type"`
	Name     string            `json:"name"`
	Features map[string]string `json:"features"`
}

// ListPlans exposes the two tiers and their entitlements. The checkout
// itself is hosted by Kiwify; this only feeds the pricing page.
func ListPlans(c *gin.Context) {
	var features []subscriptions.SubscriptionFeature
	if err := database.DB.Find(&features).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	byPlan := map[string]map[string]string{
		subscriptions.PlanMagic:  {},
		subscriptions.PlanFamily: {},
	}
	for _, f := range features {
		if _, ok := byPlan[f.PlanType]; !ok {
			byPlan[f.PlanType] = map[string]string{}
		}
		byPlan[f.PlanType][f.FeatureName] = f.FeatureValue
	}

	c.JSON(http.StatusOK, []PlanDTO{
		{Type: subscriptions.PlanMagic, Name: "Plano Mágico", Features: byPlan[subscriptions.PlanMagic]},
		{Type: subscriptions.PlanFamily, Name: "Plano Família", Features: byPlan[subscriptions.PlanFamily]},
	})
}

func GetPlanFeatures(c *gin.Context) {
	planType := c.Param("type")
	if planType != subscriptions.PlanMagic && planType != subscriptions.PlanFamily {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plano não encontrado"})
		return
	}

	var features []subscriptions.SubscriptionFeature
	if err := database.DB.Where("plan_type = ?", planType).Find(&features).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan features"})
		return
	}

	c.JSON(http.StatusOK, features)
}
