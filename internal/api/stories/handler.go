package stories

import (
	"net/http"
	"strings"

	"historinhas-api/config"
	"historinhas-api/database"
	"historinhas-api/internal/domain/children"
	"historinhas-api/internal/domain/stories"
	"historinhas-api/internal/infra/openai"
	"historinhas-api/internal/logs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListStories(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []stories.Story
	if err := database.DB.
		Preload("Child").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar as histórias"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func GetStory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")

	var story stories.Story
	if err := database.DB.
		Preload("Child").
		Where("id = ? AND user_id = ?", id, userID).
		First(&story).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "História não encontrada"})
		return
	}

	c.JSON(http.StatusOK, story)
}

func DeleteStory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")

	var story stories.Story
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&story).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "História não encontrada"})
		return
	}

	if err := database.DB.Delete(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir a história"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "História excluída"})
}

// generateInput is what the story form posts. The child can be referenced
// either by id or by the child attributes themselves (childName plus
// optional childAge/childGender); both resolve to a registered child so the
// story row stays linked.
type generateInput struct {
	ChildID           uint     `json:"child_id"`
	ChildName         string   `json:"childName"`
	ChildAge          *int     `json:"childAge"`
	ChildGender       string   `json:"childGender"`
	StoryTheme        string   `json:"storyTheme" binding:"required"`
	StoryMood         string   `json:"storyMood"`
	StoryValues       []string `json:"storyValues"`
	AdditionalDetails string   `json:"additionalDetails"`
}

// resolveChild finds the caller's child by id when given, otherwise by
// name. Ownership is part of the lookup, never checked separately.
func resolveChild(userID uint, input generateInput) (*children.Child, bool) {
	var child children.Child
	if input.ChildID != 0 {
		if err := database.DB.Where("id = ? AND user_id = ?", input.ChildID, userID).First(&child).Error; err != nil {
			return nil, false
		}
		return &child, true
	}
	if err := database.DB.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, input.ChildName).First(&child).Error; err != nil {
		return nil, false
	}
	return &child, true
}

// GenerateStory calls the AI service for the given child and persists the
// result. One request, one immutable story row.
func GenerateStory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input generateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ChildID == 0 && input.ChildName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe a criança (child_id ou childName)"})
		return
	}
	if input.ChildAge != nil && !children.ValidAge(*input.ChildAge) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A idade deve estar entre 0 e 18 anos"})
		return
	}
	if input.ChildGender != "" && !children.ValidGender(input.ChildGender) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gênero inválido"})
		return
	}

	child, ok := resolveChild(userID, input)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Criança não encontrada"})
		return
	}

	// Attributes sent with the request win over the stored row, so the
	// form can say "6 anos" while the record still says 5.
	params := openai.StoryParams{
		ChildName:         child.Name,
		ChildAge:          child.Age,
		ChildGender:       child.Gender,
		StoryTheme:        input.StoryTheme,
		StoryMood:         input.StoryMood,
		StoryValues:       input.StoryValues,
		AdditionalDetails: input.AdditionalDetails,
	}
	if input.ChildName != "" {
		params.ChildName = input.ChildName
	}
	if input.ChildAge != nil {
		params.ChildAge = *input.ChildAge
	}
	if input.ChildGender != "" {
		params.ChildGender = input.ChildGender
	}

	client := openai.NewClient(config.OPENAI_API_KEY)
	generated, err := client.GenerateStory(c.Request.Context(), params)
	if err != nil {
		logs.L().Error("story generation failed",
			zap.Uint("user_id", userID),
			zap.Uint("child_id", child.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gerar a história. Por favor, tente novamente."})
		return
	}

	story := stories.Story{
		UserID:  userID,
		ChildID: child.ID,
		Title:   generated.Title,
		Content: generated.Content,
		Theme:   input.StoryTheme,
	}
	if input.StoryMood != "" {
		mood := input.StoryMood
		story.Mood = &mood
	}
	if len(input.StoryValues) > 0 {
		joined := strings.Join(input.StoryValues, ", ")
		story.Values = &joined
	}
	if input.AdditionalDetails != "" {
		details := input.AdditionalDetails
		story.AdditionalDetails = &details
	}

	if err := database.DB.Create(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar a história"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": gin.H{
		"id":      story.ID,
		"title":   story.Title,
		"content": story.Content,
	}})
}

// CreateStory persists a story the frontend already has (e.g. a regenerated
// draft the parent decided to keep).
func CreateStory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		ChildID           uint     `json:"child_id" binding:"required"`
		Title             string   `json:"title" binding:"required"`
		Content           string   `json:"content" binding:"required"`
		Theme             string   `json:"theme" binding:"required"`
		Mood              string   `json:"mood"`
		Values            []string `json:"values"`
		AdditionalDetails string   `json:"additional_details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child children.Child
	if err := database.DB.Where("id = ? AND user_id = ?", input.ChildID, userID).First(&child).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Criança não encontrada"})
		return
	}

	story := stories.Story{
		UserID:  userID,
		ChildID: child.ID,
		Title:   input.Title,
		Content: input.Content,
		Theme:   input.Theme,
	}
	if input.Mood != "" {
		mood := input.Mood
		story.Mood = &mood
	}
	if len(input.Values) > 0 {
		joined := strings.Join(input.Values, ", ")
		story.Values = &joined
	}
	if input.AdditionalDetails != "" {
		details := input.AdditionalDetails
		story.AdditionalDetails = &details
	}

	if err := database.DB.Create(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar a história"})
		return
	}

	c.JSON(http.StatusCreated, story)
}
