/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds entities shared by executor and end-to-end tests.
package testmodels

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/entitymapper/converter"
	"github.com/suparena/entitymapper/registry"
)

// RatingSystemSettings is stored as one JSON column.
type RatingSystemSettings struct {
	InitialRating int      `json:"initialRating"`
	KFactor       float64  `json:"kFactor"`
	Divisions     []string `json:"divisions,omitempty"`
}

type RatingSystem struct {

	// Unique identifier for the rating system, reserved from the id store.
	ID int64 `entity:"Id,key,gen=store"`

	// Stable identifier shared with external systems.
	ExternalID uuid.UUID `entity:"ExternalId,conv=uuid"`

	// Name of the rating system.
	Name string `entity:"Name"`

	// A description of the rating system.
	Description string `entity:"Description"`

	// site Url
	SiteURL string `entity:"SiteUrl"`

	// Clubs using the rating system.
	Clubs []string `entity:"Clubs,conv=stringlist"`

	Settings *RatingSystemSettings `entity:"Settings"`

	// Timestamp when the rating system was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `entity:"CreatedAt,conv=datetime"`

	// Timestamp when the rating system was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime `entity:"UpdatedAt,conv=datetime"`
}

// EntityName implements registry.EntityNamer.
func (RatingSystem) EntityName() string { return "rating_systems" }

func init() {
	if err := registry.BindConverter[RatingSystem]("Settings", converter.JSON[RatingSystemSettings]()); err != nil {
		panic(err)
	}
}
