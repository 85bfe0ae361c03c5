package children

import (
	"net/http"
	"time"

	"historinhas-api/database"
	"historinhas-api/internal/domain/children"
	"historinhas-api/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

func ListChildren(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var kids []children.Child
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&kids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar as crianças"})
		return
	}

	c.JSON(http.StatusOK, kids)
}

func CreateChild(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Name   string `json:"name" binding:"required"`
		Age    *int   `json:"age" binding:"required"`
		Gender string `json:"gender" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !children.ValidAge(*input.Age) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A idade deve estar entre 0 e 18 anos"})
		return
	}
	if !children.ValidGender(input.Gender) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gênero inválido"})
		return
	}

	// Child limit comes from the plan entitlements; one child without a
	// subscription so a parent can try the product.
	limit := 1
	sub, err := subscriptions.Current(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	if sub != nil && subscriptions.HasEffectiveAccess(time.Now(), sub) {
		limit = subscriptions.MaxChildren(database.DB, sub.PlanType)
	}

	var count int64
	if err := database.DB.Model(&children.Child{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar as crianças"})
		return
	}
	if count >= int64(limit) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Limite de crianças do seu plano atingido"})
		return
	}

	child := children.Child{
		UserID: userID,
		Name:   input.Name,
		Age:    *input.Age,
		Gender: input.Gender,
	}
	if err := database.DB.Create(&child).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível cadastrar a criança"})
		return
	}

	c.JSON(http.StatusCreated, child)
}

func DeleteChild(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")

	var child children.Child
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&child).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Criança não encontrada"})
		return
	}

	if err := database.DB.Delete(&child).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível remover a criança"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Criança removida"})
}
