package admin

import (
	"net/http"
	"time"

	"historinhas-api/database"
	"historinhas-api/internal/domain/children"
	"historinhas-api/internal/domain/stories"
	"historinhas-api/internal/domain/subscriptions"
	"historinhas-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminUser struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	PlanType   *string   `json:"plan_type,omitempty"`
	SubStatus  *string   `json:"subscription_status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers      int            `json:"total_users"`
	TotalChildren   int            `json:"total_children"`
	TotalStories    int            `json:"total_stories"`
	RecentStories   int            `json:"recent_stories"`
	ActiveSubsPlan  map[string]int `json:"active_subscriptions_per_plan"`
	TotalActiveSubs int            `json:"total_active_subscriptions"`
}

func ListAllUsers(c *gin.Context) {
	var allUsers []users.User
	if err := database.DB.Order("created_at DESC").Find(&allUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	// One query for everyone's subscriptions; newest-first makes the first
	// row per user the authoritative one.
	var subs []subscriptions.Subscription
	if err := database.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	current := make(map[uint]*subscriptions.Subscription, len(subs))
	for i := range subs {
		if _, ok := current[subs[i].UserID]; !ok {
			current[subs[i].UserID] = &subs[i]
		}
	}

	result := make([]AdminUser, 0, len(allUsers))
	for _, u := range allUsers {
		entry := AdminUser{
			ID:         u.ID,
			FullName:   u.FullName,
			Email:      u.Email,
			Phone:      u.Phone,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		}

		if sub := current[u.ID]; sub != nil {
			entry.PlanType = &sub.PlanType
			entry.SubStatus = &sub.Status
		}

		result = append(result, entry)
	}

	c.JSON(http.StatusOK, result)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	var kids []children.Child
	if err := database.DB.Where("user_id = ?", userID).Find(&kids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch children"})
		return
	}

	var userStories []stories.Story
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&userStories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"children":      kids,
		"stories":       userStories,
		"subscriptions": subs,
	})
}

// CreateUser lets support provision an account ahead of a purchase.
func CreateUser(c *gin.Context) {
	var input struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := input.Role
	if role != "admin" {
		role = "user"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := users.User{
		FullName:     input.FullName,
		Email:        input.Email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         role,
		IsVerified:   true, // admin-created accounts skip email verification
	}
	if input.Phone != "" {
		phone := input.Phone
		user.Phone = &phone
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Este email já está cadastrado"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

func ListAllSubscriptions(c *gin.Context) {
	var subs []subscriptions.Subscription
	if err := database.DB.
		Preload("User").
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	type entry struct {
		subscriptions.Subscription
		UserEmail    string `json:"user_email"`
		UserFullName string `json:"user_full_name"`
	}
	result := make([]entry, 0, len(subs))
	for _, s := range subs {
		result = append(result, entry{
			Subscription: s,
			UserEmail:    s.User.Email,
			UserFullName: s.User.FullName,
		})
	}

	c.JSON(http.StatusOK, result)
}

// CreateSubscription grants a subscription manually (refund goodwill,
// partnerships). Mirrors what the reconciler writes, with a synthetic
// order id.
func CreateSubscription(c *gin.Context) {
	var input struct {
		UserID    uint       `json:"user_id" binding:"required"`
		PlanType  string     `json:"plan_type" binding:"required"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.PlanType != subscriptions.PlanMagic && input.PlanType != subscriptions.PlanFamily {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plano inválido"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	start := time.Now()
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := start.Add(30 * 24 * time.Hour)
	if input.EndDate != nil {
		end = *input.EndDate
	}

	sub := subscriptions.Subscription{
		UserID:        user.ID,
		KiwifyOrderID: "manual-" + time.Now().UTC().Format("20060102150405"),
		PlanType:      input.PlanType,
		Status:        subscriptions.StatusActive,
		StartDate:     start,
		EndDate:       end,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers, totalChildren, totalStories, recentStories int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&children.Child{}).Count(&totalChildren)
	database.DB.Model(&stories.Story{}).Count(&totalStories)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&stories.Story{}).Where("created_at >= ?", thirtyDaysAgo).Count(&recentStories)

	stats.TotalUsers = int(totalUsers)
	stats.TotalChildren = int(totalChildren)
	stats.TotalStories = int(totalStories)
	stats.RecentStories = int(recentStories)

	type PlanCount struct {
		PlanType string
		Count    int
	}
	var counts []PlanCount

	now := time.Now()
	database.DB.
		Table("subscriptions").
		Select("plan_type, COUNT(id) as count").
		Where("status = ? AND start_date <= ? AND end_date >= ?", subscriptions.StatusActive, now, now).
		Group("plan_type").
		Scan(&counts)

	stats.ActiveSubsPlan = map[string]int{}
	for _, pc := range counts {
		stats.ActiveSubsPlan[pc.PlanType] = pc.Count
		stats.TotalActiveSubs += pc.Count
	}

	c.JSON(http.StatusOK, stats)
}
