package users

import (
	"net/http"
	"time"

	"historinhas-api/database"
	"historinhas-api/internal/domain/subscriptions"
	"historinhas-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	sub, err := subscriptions.Current(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			FullName:   user.FullName,
			Phone:      user.Phone,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Subscription: buildSubscriptionDTO(sub),
		Access: AccessDTO{
			State:    string(subscriptions.ComputeAccessState(time.Now(), sub)),
			Features: buildFeatureDTOs(sub),
		},
	}

	c.JSON(http.StatusOK, resp)
}

func UpdateCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != "" {
		updates["full_name"] = input.FullName
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Perfil atualizado"})
}

// GetMySubscriptions lists the caller's subscription history, newest
// first. The first row is the one the UI treats as authoritative.
func GetMySubscriptions(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func buildSubscriptionDTO(sub *subscriptions.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:                   sub.ID,
		PlanType:             sub.PlanType,
		Status:               sub.Status,
		StartDate:            sub.StartDate,
		EndDate:              sub.EndDate,
		KiwifyOrderID:        sub.KiwifyOrderID,
		KiwifySubscriptionID: sub.KiwifySubscriptionID,
	}
}

func buildFeatureDTOs(sub *subscriptions.Subscription) []FeatureDTO {
	if sub == nil {
		return []FeatureDTO{}
	}

	var features []subscriptions.SubscriptionFeature
	if err := database.DB.Where("plan_type = ?", sub.PlanType).Find(&features).Error; err != nil {
		return []FeatureDTO{}
	}

	out := make([]FeatureDTO, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureDTO{Name: f.FeatureName, Value: f.FeatureValue})
	}
	return out
}
