package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidProfileField = errors.New("invalid profile field")

// ProfileField is the column name of a profile field that managers may edit.
type ProfileField string

const (
	FieldName             ProfileField = "name"
	FieldLocation         ProfileField = "location"
	FieldBio              ProfileField = "bio"
	FieldPhotoURL         ProfileField = "photo_url"
	FieldFantasyStartYear ProfileField = "fantasy_start_year"
	FieldFavoriteTeam     ProfileField = "favorite_team"
	FieldMode             ProfileField = "mode"
	FieldRivalName        ProfileField = "rival_name"
	FieldRivalManagerID   ProfileField = "rival_manager_id"
	FieldFavoritePlayerID ProfileField = "favorite_player_id"
	FieldValuePosition    ProfileField = "value_position"
	FieldRookieOrVets     ProfileField = "rookie_or_vets"
	FieldPhilosophy       ProfileField = "philosophy"
	FieldTradingScale     ProfileField = "trading_scale"
	FieldPreferredContact ProfileField = "preferred_contact"
)

// EditableProfileFields is the allow-list for profile edits. Verification and
// session columns are deliberately absent.
var EditableProfileFields = []ProfileField{
	FieldName,
	FieldLocation,
	FieldBio,
	FieldPhotoURL,
	FieldFantasyStartYear,
	FieldFavoriteTeam,
	FieldMode,
	FieldRivalName,
	FieldRivalManagerID,
	FieldFavoritePlayerID,
	FieldValuePosition,
	FieldRookieOrVets,
	FieldPhilosophy,
	FieldTradingScale,
	FieldPreferredContact,
}

func (f ProfileField) isInt() bool {
	return f == FieldFantasyStartYear || f == FieldTradingScale
}

// ProfileUpdate is a sanitized set of profile edits. A nil value clears the
// column. It can only be built through SanitizeProfileUpdate.
type ProfileUpdate struct {
	values map[ProfileField]any
}

// SanitizeProfileUpdate keeps the allow-listed keys of a decoded JSON body and
// silently drops everything else. Integer fields accept JSON numbers or
// numeric strings; text fields accept strings. null clears a field.
func SanitizeProfileUpdate(raw map[string]any) (ProfileUpdate, error) {
	u := ProfileUpdate{values: make(map[ProfileField]any)}
	for _, f := range EditableProfileFields {
		v, present := raw[string(f)]
		if !present {
			continue
		}
		if v == nil {
			u.values[f] = nil
			continue
		}

		if f.isInt() {
			n, err := toInt(v)
			if err != nil {
				return ProfileUpdate{}, fmt.Errorf("%w: %s: %v", ErrInvalidProfileField, f, err)
			}
			u.values[f] = n
			continue
		}

		s, ok := v.(string)
		if !ok {
			return ProfileUpdate{}, fmt.Errorf("%w: %s must be a string", ErrInvalidProfileField, f)
		}
		u.values[f] = s
	}
	return u, nil
}

// toInt converts a decoded JSON value to an int that fits the INTEGER column.
func toInt(v any) (int, error) {
	var n int64
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || val < math.MinInt32 || val > math.MaxInt32 {
			return 0, fmt.Errorf("%v is not a whole number in range", val)
		}
		n = int64(val)
	case int:
		n = int64(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, err
		}
		n = i
	case string:
		if strings.TrimSpace(val) == "" {
			return 0, nil
		}
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, err
		}
		n = i
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%d is out of range", n)
	}
	return int(n), nil
}

// Fields returns the fields present in the update in allow-list order.
func (u ProfileUpdate) Fields() []ProfileField {
	fields := make([]ProfileField, 0, len(u.values))
	for _, f := range EditableProfileFields {
		if _, ok := u.values[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Value returns the value for f; ok is false if f is not part of the update.
func (u ProfileUpdate) Value(f ProfileField) (v any, ok bool) {
	v, ok = u.values[f]
	return v, ok
}

func (u ProfileUpdate) Len() int {
	return len(u.values)
}
