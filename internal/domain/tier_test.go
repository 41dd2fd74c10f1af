package domain

import "testing"

func TestTierOrder(t *testing.T) {
	ordered := []Tier{TierFree, TierPaid, TierElite}
	for i, lower := range ordered {
		for j, higher := range ordered {
			if j < i {
				continue
			}
			if !higher.Allows(lower) {
				t.Errorf("tier %s should allow features requiring %s", higher, lower)
			}
			if i != j && lower.Allows(higher) {
				t.Errorf("tier %s should not allow features requiring %s", lower, higher)
			}
		}
	}
	for _, tier := range ordered {
		if !tier.Allows(tier) {
			t.Errorf("tier %s should allow itself", tier)
		}
	}
}

func TestUnknownTierDeniedEverything(t *testing.T) {
	for _, raw := range []string{"", "gold", "ELITEPLUS", "admin"} {
		tier, ok := ParseTier(raw)
		if ok {
			t.Fatalf("ParseTier(%q) unexpectedly recognized", raw)
		}
		for _, required := range []Tier{TierFree, TierPaid, TierElite} {
			if tier.Allows(required) {
				t.Errorf("unknown tier %q must not unlock %s features", raw, required)
			}
		}
	}
}

func TestParseTierNormalizes(t *testing.T) {
	tier, ok := ParseTier("  Elite ")
	if !ok || tier != TierElite {
		t.Fatalf("ParseTier: got %q ok=%v", tier, ok)
	}
}

func TestCatalogDefaults(t *testing.T) {
	c := DefaultCatalog()
	cases := []struct {
		tier FeatureID
		want Tier
	}{
		{FeatureCreator, TierFree},
		{FeatureCoaching, TierFree},
		{FeatureHardware, TierPaid},
		{FeatureBranding, TierPaid},
		{FeatureVodQueue, TierElite},
	}
	for _, tc := range cases {
		if got := c.RequiredTier(tc.tier); got != tc.want {
			t.Errorf("RequiredTier(%s) = %s, want %s", tc.tier, got, tc.want)
		}
	}
	if got := c.RequiredTier("future-feature"); got != TierFree {
		t.Errorf("unlisted feature should default to free, got %s", got)
	}
}

func TestCatalogOverrides(t *testing.T) {
	c, err := ParseCatalogJSON(`{"hardware":"free","creator":"paid"}`)
	if err != nil {
		t.Fatalf("ParseCatalogJSON: %v", err)
	}
	if !c.Allowed(TierFree, FeatureHardware) {
		t.Error("override should make hardware free-tier")
	}
	if c.Allowed(TierFree, FeatureCreator) {
		t.Error("override should make creator paid-tier")
	}
	if _, err := ParseCatalogJSON(`{"hardware":"platinum"}`); err == nil {
		t.Error("unknown tier in overrides should be rejected")
	}
}

func TestVisibleFeatures(t *testing.T) {
	c := DefaultCatalog()
	free := c.VisibleFeatures(TierFree)
	for _, id := range free {
		if c.RequiredTier(id) != TierFree {
			t.Errorf("free tier should not see %s", id)
		}
	}
	elite := c.VisibleFeatures(TierElite)
	if len(elite) != len(c.Features()) {
		t.Errorf("elite should see the full catalog, got %d of %d", len(elite), len(c.Features()))
	}
	unknown, _ := ParseTier("mystery")
	if got := c.VisibleFeatures(unknown); len(got) != 0 {
		t.Errorf("unknown tier should see nothing, got %v", got)
	}
}
