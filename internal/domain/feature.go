package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FeatureID names a gated capability of the product.
type FeatureID string

const (
	FeatureDashboard FeatureID = "dashboard"
	FeatureCreator   FeatureID = "creator"
	FeatureCoaching  FeatureID = "coaching"
	FeatureHardware  FeatureID = "hardware"
	FeatureBranding  FeatureID = "branding"
	FeatureCalendar  FeatureID = "calendar"
	FeatureVodQueue  FeatureID = "vod-queue"
)

// Feature couples a capability with the minimum tier that unlocks it.
type Feature struct {
	ID           FeatureID
	RequiredTier Tier
}

// Catalog is the tier-to-feature mapping. It is configuration data, not
// code: deployments override the defaults via FEATURE_TIERS.
type Catalog struct {
	features map[FeatureID]Tier
}

// DefaultCatalog mirrors the product's stock unlock table.
func DefaultCatalog() *Catalog {
	return &Catalog{features: map[FeatureID]Tier{
		FeatureDashboard: TierFree,
		FeatureCreator:   TierFree,
		FeatureCoaching:  TierFree,
		FeatureHardware:  TierPaid,
		FeatureBranding:  TierPaid,
		FeatureCalendar:  TierPaid,
		FeatureVodQueue:  TierElite,
	}}
}

// NewCatalog builds a catalog from the default table with per-feature tier
// overrides applied. Unknown feature ids are accepted (forward
// compatibility); unknown tier values are rejected.
func NewCatalog(overrides map[string]string) (*Catalog, error) {
	c := DefaultCatalog()
	for id, raw := range overrides {
		tier, ok := ParseTier(raw)
		if !ok {
			return nil, fmt.Errorf("feature %q: unsupported tier %q", id, raw)
		}
		c.features[FeatureID(strings.TrimSpace(id))] = tier
	}
	return c, nil
}

// ParseCatalogJSON decodes a FEATURE_TIERS payload such as
// {"hardware":"paid","calendar":"free"} into a catalog.
func ParseCatalogJSON(raw string) (*Catalog, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultCatalog(), nil
	}
	overrides := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("parse feature tiers: %w", err)
	}
	return NewCatalog(overrides)
}

// RequiredTier returns the minimum tier for a feature. Features missing from
// the catalog default to free, per the product contract.
func (c *Catalog) RequiredTier(id FeatureID) Tier {
	if t, ok := c.features[id]; ok {
		return t
	}
	return TierFree
}

// Allowed reports whether a user tier unlocks the feature.
func (c *Catalog) Allowed(userTier Tier, id FeatureID) bool {
	return userTier.Allows(c.RequiredTier(id))
}

// VisibleFeatures returns the sorted set of features the tier unlocks.
// Rendering (tab locking, nav state) layers on top of this; the gate itself
// never touches the presentation.
func (c *Catalog) VisibleFeatures(tier Tier) []FeatureID {
	out := make([]FeatureID, 0, len(c.features))
	for id, required := range c.features {
		if tier.Allows(required) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Features lists the whole catalog, sorted by id.
func (c *Catalog) Features() []Feature {
	out := make([]Feature, 0, len(c.features))
	for id, tier := range c.features {
		out = append(out, Feature{ID: id, RequiredTier: tier})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
