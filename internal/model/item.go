package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Item — объявление маркетплейса.
// Поля, которых нет в схеме, хранятся в Extra и при сериализации поднимаются на верхний уровень.
type Item struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Category    string `gorm:"index"`
	Condition   string
	PostedBy    string
	Zipcode     string
	Description string
	Image       string
	AgeDays     float64
	AgeYears    float64
	DateAdded   int64      `gorm:"not null"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`

	Extra map[string]any `gorm:"serializer:json"`
}

// ItemUpdate — изменяемые через PUT поля. nil означает «оставить как есть».
type ItemUpdate struct {
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	AgeDays     *float64 `json:"age_days"`
	Description *string  `json:"description"`
}

// серверные поля, значения клиента для них игнорируются
var serverAssigned = map[string]struct{}{
	"id":         {},
	"_id":        {},
	"date_added": {},
	"age_years":  {},
	"updatedAt":  {},
	"updated_at": {},
}

// AgeInYears переводит возраст в днях в годы с одним знаком после запятой.
func AgeInYears(days float64) float64 {
	return math.Round(days/365*10) / 10
}

// Apply переносит заданные поля обновления в item и пересчитывает age_years.
func (u ItemUpdate) Apply(it *Item) {
	if u.Category != nil {
		it.Category = *u.Category
	}
	if u.Condition != nil {
		it.Condition = *u.Condition
	}
	if u.AgeDays != nil {
		it.AgeDays = *u.AgeDays
	}
	if u.Description != nil {
		it.Description = *u.Description
	}
	it.AgeYears = AgeInYears(it.AgeDays)
}

// ItemFromFields собирает Item из произвольных полей запроса (form-data или JSON).
func ItemFromFields(fields map[string]any) (*Item, error) {
	it := &Item{}
	for k, v := range fields {
		if _, skip := serverAssigned[k]; skip {
			continue
		}
		switch k {
		case "name":
			it.Name = asString(v)
		case "category":
			it.Category = asString(v)
		case "condition":
			it.Condition = asString(v)
		case "posted_by":
			it.PostedBy = asString(v)
		case "zipcode":
			it.Zipcode = asString(v)
		case "description":
			it.Description = asString(v)
		case "image":
			it.Image = asString(v)
		case "age_days":
			days, err := asFloat(v)
			if err != nil {
				return nil, fmt.Errorf("age_days: %w", err)
			}
			it.AgeDays = days
			it.AgeYears = AgeInYears(days)
		default:
			if it.Extra == nil {
				it.Extra = make(map[string]any)
			}
			it.Extra[k] = v
		}
	}
	return it, nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(it.Extra)+12)
	for k, v := range it.Extra {
		out[k] = v
	}
	out["id"] = it.ID
	out["name"] = it.Name
	out["category"] = it.Category
	out["condition"] = it.Condition
	out["posted_by"] = it.PostedBy
	out["zipcode"] = it.Zipcode
	out["description"] = it.Description
	out["image"] = it.Image
	out["age_days"] = it.AgeDays
	out["age_years"] = it.AgeYears
	out["date_added"] = it.DateAdded
	if it.UpdatedAt != nil {
		out["updatedAt"] = it.UpdatedAt.UTC()
	}
	return json.Marshal(out)
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, nil
		}
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}
