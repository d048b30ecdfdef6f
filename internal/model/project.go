// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Project statuses
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// ProjectStatuses lists every valid project status.
func ProjectStatuses() []string {
	return []string{
		ProjectStatusPlanning,
		ProjectStatusActive,
		ProjectStatusOnHold,
		ProjectStatusCompleted,
		ProjectStatusCancelled,
	}
}

// Project represents a portfolio case study.
type Project struct {
	ID           int64        `db:"id" json:"id"`
	Title        string       `db:"title" json:"title"`
	Slug         string       `db:"slug" json:"slug"`
	Client       string       `db:"client" json:"client"`
	Category     string       `db:"category" json:"category"`
	Description  string       `db:"description" json:"description"`
	Image        string       `db:"image" json:"image"`
	Technologies List[string] `db:"technologies" json:"technologies"`
	Duration     string       `db:"duration" json:"duration"`
	Team         string       `db:"team" json:"team"`
	Status       string       `db:"status" json:"status"`
	Featured     bool         `db:"featured" json:"featured"`
	Results      List[string] `db:"results" json:"results"`
	GraphData    GraphData    `db:"graph_data" json:"graphData"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// GraphBar is one bar of a project results chart.
type GraphBar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Unit  string  `json:"unit"`
}

// GraphData is the results chart shown on a project page.
// Stored as a JSON object in a TEXT column.
type GraphData struct {
	Title       string         `json:"title"`
	Bars        List[GraphBar] `json:"bars"`
	Explanation string         `json:"explanation"`
}

// Value implements driver.Valuer.
func (g GraphData) Value() (driver.Value, error) {
	if g.Bars == nil {
		g.Bars = List[GraphBar]{}
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Malformed values decode to an empty chart.
func (g *GraphData) Scan(src any) error {
	*g = GraphData{Bars: List[GraphBar]{}}
	s := columnText(src)
	if s == "" {
		return nil
	}
	var decoded GraphData
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil
	}
	if decoded.Bars == nil {
		decoded.Bars = List[GraphBar]{}
	}
	*g = decoded
	return nil
}
