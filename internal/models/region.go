package models

import (
	"errors"
	"time"
)

// Region represents a row of the regions table, either a prefecture or a municipality keyed by its JIS code.
type Region struct {
	JISCode       string     `json:"jis_code"`
	Name          string     `json:"name"`
	NameKana      string     `json:"name_kana"`
	RegionType    RegionType `json:"region_type"`
	ParentJISCode *string    `json:"parent_jis_code"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RegionHierarchy is a region joined with the name of its parent prefecture.
type RegionHierarchy struct {
	Region
	ParentName *string `json:"parent_name"`
}

// ErrRegionNotFound is returned when no region has the requested code.
var ErrRegionNotFound = errors.New("region not found")
