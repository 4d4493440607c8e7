package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Role Tests ---

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"fan", "FAN", RoleFan, false},
		{"fighter", "FIGHTER", RoleFighter, false},
		{"sponsor", "SPONSOR", RoleSponsor, false},
		{"donor", "DONOR", RoleDonor, false},
		{"admin", "ADMIN", RoleAdmin, false},
		{"guest", "GUEST", RoleGuest, false},
		{"lowercase rejected", "fan", "", true},
		{"empty rejected", "", "", true},
		{"unknown rejected", "SUPERUSER", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown role")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("HACKER").Valid())
}

// --- Validator Tests ---

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "user@example.com", false},
		{"valid email with plus", "user+tag@example.com", false},
		{"empty string", "", true},
		{"no at sign", "userexample.com", true},
		{"no domain", "user@", true},
		{"no tld", "user@example", true},
		{"spaces", "user @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid address", "0x8ba1f109551bD432803012645Ac136ddd64DBA72", false},
		{"valid lowercase", "0x8ba1f109551bd432803012645ac136ddd64dba72", false},
		{"missing prefix", "8ba1f109551bD432803012645Ac136ddd64DBA72", true},
		{"too short", "0x8ba1f109551bD43280301264", true},
		{"non-hex chars", "0x8ba1f109551bD432803012645Ac136ddd64DBAZZ", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletAddress(tt.addr)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	require.NoError(t, ValidateWeight(150))
	require.NoError(t, ValidateWeight(0.5))
	require.Error(t, ValidateWeight(0))
	require.Error(t, ValidateWeight(-10))
}

// --- Division Classification Tests ---

func TestClassifyDivision(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		gender   string
		want     string
		classify bool
	}{
		{"male 165 on inclusive upper bound", 165, GenderMale, "Lightweight", true},
		{"male just above 165", 165.01, GenderMale, "Welterweight", true},
		{"male 190 boundary", 190, GenderMale, "Welterweight", true},
		{"male heavyweight", 250, GenderMale, "Heavyweight", true},
		{"male above all brackets", 300, GenderMale, "", false},
		{"female flyweight", 120, GenderFemale, "Flyweight", true},
		{"female 125 boundary", 125, GenderFemale, "Flyweight", true},
		{"female just above 125", 125.5, GenderFemale, "Bantamweight", true},
		{"zero weight never classifies", 0, GenderMale, "", false},
		{"negative weight never classifies", -5, GenderFemale, "", false},
		{"unknown gender", 150, "other", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ClassifyDivision(tt.weight, tt.gender)
			assert.Equal(t, tt.classify, ok)
			if tt.classify {
				assert.Equal(t, tt.want, d.Name)
			}
		})
	}
}

func TestDivisionRangesContiguous(t *testing.T) {
	// For each gender, brackets must tile the axis: next.min == prev.max.
	byGender := map[string][]Division{}
	for _, d := range Divisions {
		byGender[d.Gender] = append(byGender[d.Gender], d)
	}
	for gender, divs := range byGender {
		for i := 1; i < len(divs); i++ {
			assert.Equal(t, divs[i-1].MaxWeight, divs[i].MinWeight,
				"gap between %s brackets %s and %s", gender, divs[i-1].Name, divs[i].Name)
		}
	}
}

func TestDivisionByName(t *testing.T) {
	d, ok := DivisionByName("Welterweight", GenderMale)
	require.True(t, ok)
	assert.Equal(t, 165.0, d.MinWeight)
	assert.Equal(t, 190.0, d.MaxWeight)

	_, ok = DivisionByName("Welterweight", GenderFemale)
	assert.False(t, ok)

	_, ok = DivisionByName("Cruiserweight", GenderMale)
	assert.False(t, ok)
}

// --- Fighter Tests ---

func TestFighterRecord(t *testing.T) {
	f := &Fighter{Wins: 12, Losses: 3, Draws: 1}
	assert.Equal(t, "12-3-1", f.Record())

	zero := &Fighter{}
	assert.Equal(t, "0-0-0", zero.Record())
}

func TestValidGender(t *testing.T) {
	assert.True(t, ValidGender("male"))
	assert.True(t, ValidGender("female"))
	assert.False(t, ValidGender("Male"))
	assert.False(t, ValidGender(""))
}

// --- Tier Tests ---

func TestValidTier(t *testing.T) {
	for _, tier := range []string{TierGold, TierSilver, TierBronze, TierPartner, TierPlatinum} {
		assert.True(t, ValidTier(tier), tier)
	}
	assert.False(t, ValidTier("Diamond"))
	assert.False(t, ValidTier("gold"))
}

// --- AppError Tests ---

func TestAppError(t *testing.T) {
	t.Run("message without cause", func(t *testing.T) {
		err := ErrNotFound("fighter", "7")
		assert.Equal(t, "NOT_FOUND: fighter 7 not found", err.Error())
		assert.Equal(t, 404, err.Status)
	})

	t.Run("message with cause", func(t *testing.T) {
		err := ErrInternal("approve fighter", assert.AnError)
		assert.Contains(t, err.Error(), "INTERNAL_ERROR")
		assert.Contains(t, err.Error(), assert.AnError.Error())
		assert.Equal(t, assert.AnError, err.Unwrap())
	})

	t.Run("not pending carries 404", func(t *testing.T) {
		err := ErrNotPending(5)
		assert.Equal(t, 404, err.Status)
		assert.Contains(t, err.Message, "not found or was not pending")
	})
}
