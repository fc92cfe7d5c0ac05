package model

import (
	"math/big"
	"sort"
)

// RiskLevel classifies a tag.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
	RiskSevere RiskLevel = "severe"
)

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	return r.severity() > 0
}

func (r RiskLevel) severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskSevere:
		return 4
	default:
		return 0
	}
}

// Entity groups addresses across networks.
type Entity struct {
	ID          int64
	Name        string
	Description string
}

// Tag is a risk label attached to entities.
type Tag struct {
	ID        int64
	Name      string
	RiskLevel RiskLevel
}

// Address is a string scoped to a network, optionally owned by an entity.
type Address struct {
	Network     string
	Address     string
	EntityID    int64
	Description string
}

// AddressLabel is the entity and tags resolved for an address.
type AddressLabel struct {
	Entity Entity
	Tags   []Tag
}

// Labeled reports whether the address counts as a labeled sink.
func (l AddressLabel) Labeled() bool {
	return len(l.Tags) > 0
}

// RiskLevels returns the distinct risk levels of the tags, least severe first.
func (l AddressLabel) RiskLevels() []RiskLevel {
	seen := make(map[RiskLevel]struct{}, len(l.Tags))
	levels := make([]RiskLevel, 0, len(l.Tags))
	for _, tag := range l.Tags {
		if _, ok := seen[tag.RiskLevel]; ok {
			continue
		}
		seen[tag.RiskLevel] = struct{}{}
		levels = append(levels, tag.RiskLevel)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].severity() < levels[j].severity() })
	return levels
}

// TraceRequest parameterizes an upstream trace.
type TraceRequest struct {
	Network   string
	Address   string
	Asset     string
	HopLimit  int
	MinAmount *big.Int
}

// Attribution is a labeled address found upstream of a target.
type Attribution struct {
	Network    string
	Address    string
	Hops       int
	Amount     *big.Int
	Entity     Entity
	Tags       []Tag
	RiskLevels []RiskLevel
}

// Edge is the aggregated value moved from one address to another.
type Edge struct {
	From   string
	To     string
	Amount *big.Int
}

// AssetFlow summarizes what an address received and sent of one asset.
type AssetFlow struct {
	Asset    string
	Received *big.Int
	Sent     *big.Int
	Balance  *big.Int
}

// Info answers what is known about an address.
type Info struct {
	Network    string
	Address    string
	Label      *AddressLabel
	RiskLevels []RiskLevel
	Assets     []AssetFlow
	Sources    []Attribution
}
