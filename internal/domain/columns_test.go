package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Start Month", "startmonth"},
		{"  FestivalName ", "festivalname"},
		{"\ufeffState", "state"},
		{"Visitors in the previous year", "visitorsinthepreviousyear"},
		{"외국인 방문객", "외국인방문객"},
		// Decomposed jamo (macOS exports) compose to the same syllables.
		{"\u110c\u1175\u11a8", "\uc9c1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeLabel(tt.input), tt.input)
	}
}

func TestResolveColumns(t *testing.T) {
	t.Run("canonical header", func(t *testing.T) {
		plan := ResolveColumns([]string{"State", "FestivalName", "FestivalType", "StartMonth", "Foreigner", "Venue"})

		assert.Equal(t, ColumnPlan{
			FieldRegion:   "State",
			FieldName:     "FestivalName",
			FieldCategory: "FestivalType",
			FieldMonth:    "StartMonth",
			FieldVisitors: "Foreigner",
			FieldPlace:    "Venue",
		}, plan)
		assert.Empty(t, plan.Missing())
	})

	t.Run("foreign column beats earlier generic visitor column", func(t *testing.T) {
		plan := ResolveColumns([]string{"Visitors in the previous year", "Foreigner", "FestivalName"})

		label, ok := plan.Column(FieldVisitors)
		assert.True(t, ok)
		assert.Equal(t, "Foreigner", label)
	})

	t.Run("foreign substring beats generic visitor column", func(t *testing.T) {
		plan := ResolveColumns([]string{"Total Visitors", "Foreign Visitors 2024"})
		assert.Equal(t, "Foreign Visitors 2024", plan[FieldVisitors])
	})

	t.Run("generic visitor column used when no foreign column", func(t *testing.T) {
		plan := ResolveColumns([]string{"festival name", "visitors in the previous year"})
		assert.Equal(t, "visitors in the previous year", plan[FieldVisitors])
	})

	t.Run("varying vintage labels", func(t *testing.T) {
		plan := ResolveColumns([]string{"region", "festival name", "festival type", "start month", "foreigner", "venue"})

		assert.Equal(t, "region", plan[FieldRegion])
		assert.Equal(t, "festival name", plan[FieldName])
		assert.Equal(t, "festival type", plan[FieldCategory])
		assert.Equal(t, "start month", plan[FieldMonth])
		assert.Equal(t, "foreigner", plan[FieldVisitors])
		assert.Equal(t, "venue", plan[FieldPlace])
	})

	t.Run("korean labels", func(t *testing.T) {
		plan := ResolveColumns([]string{"광역자치단체명", "축제명", "축제유형", "개최월", "외국인", "개최장소"})

		assert.Equal(t, "광역자치단체명", plan[FieldRegion])
		assert.Equal(t, "축제명", plan[FieldName])
		assert.Equal(t, "축제유형", plan[FieldCategory])
		assert.Equal(t, "개최월", plan[FieldMonth])
		assert.Equal(t, "외국인", plan[FieldVisitors])
		assert.Equal(t, "개최장소", plan[FieldPlace])
	})

	t.Run("each column feeds one field", func(t *testing.T) {
		plan := ResolveColumns([]string{"state"})
		assert.Equal(t, ColumnPlan{FieldRegion: "state"}, plan)
	})

	t.Run("missing columns", func(t *testing.T) {
		plan := ResolveColumns([]string{"FestivalName", "unrelated"})

		assert.Equal(t, []Field{FieldRegion, FieldCategory, FieldMonth, FieldVisitors, FieldPlace}, plan.Missing())
	})

	t.Run("empty header", func(t *testing.T) {
		plan := ResolveColumns(nil)
		assert.Equal(t, Fields, plan.Missing())
	})
}
