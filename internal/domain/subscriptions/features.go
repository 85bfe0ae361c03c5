package subscriptions

import (
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionFeature is static reference data describing what each plan
// entitles. Seeded at migration time, read-only afterwards.
type SubscriptionFeature struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PlanType     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_features_plan_name,priority:1" json:"plan_type"`
	FeatureName  string `gorm:"not null;uniqueIndex:idx_features_plan_name,priority:2" json:"feature_name"`
	FeatureValue string `gorm:"not null" json:"feature_value"`
}

const (
	FeatureMaxChildren     = "max_children"
	FeatureStoriesPerMonth = "stories_per_month"
	FeaturePDFDownload     = "pdf_download"
)

var defaultFeatures = []SubscriptionFeature{
	{PlanType: PlanMagic, FeatureName: FeatureMaxChildren, FeatureValue: "1"},
	{PlanType: PlanMagic, FeatureName: FeatureStoriesPerMonth, FeatureValue: "unlimited"},
	{PlanType: PlanMagic, FeatureName: FeaturePDFDownload, FeatureValue: "true"},
	{PlanType: PlanFamily, FeatureName: FeatureMaxChildren, FeatureValue: "4"},
	{PlanType: PlanFamily, FeatureName: FeatureStoriesPerMonth, FeatureValue: "unlimited"},
	{PlanType: PlanFamily, FeatureName: FeaturePDFDownload, FeatureValue: "true"},
}

func SeedFeatures(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_type"}, {Name: "feature_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"feature_value"}),
	}).Create(&defaultFeatures).Error
}

// MaxChildren resolves the child limit for a plan. Unknown plans get the
// single-child limit.
func MaxChildren(db *gorm.DB, planType string) int {
	var f SubscriptionFeature
	err := db.
		Where("plan_type = ? AND feature_name = ?", planType, FeatureMaxChildren).
		First(&f).Error
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(f.FeatureValue)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
