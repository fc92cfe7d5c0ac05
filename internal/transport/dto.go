package transport

import (
	"math/big"
	"net/url"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

type networkDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Architecture      string   `json:"architecture"`
	Chain             string   `json:"chain"`
	BlockTimeMS       int64    `json:"block_time_ms"`
	RPCEndpoints      []string `json:"rpc_endpoints"`
	RPS               float64  `json:"rps"`
	GenesisHeight     uint64   `json:"genesis_height"`
	InternalTransfers bool     `json:"internal_transfers"`
	Enabled           bool     `json:"enabled"`
}

func (d networkDTO) toModel() model.Network {
	return model.Network{
		ID:                d.ID,
		Name:              d.Name,
		Architecture:      model.Architecture(d.Architecture),
		Chain:             d.Chain,
		BlockTime:         time.Duration(d.BlockTimeMS) * time.Millisecond,
		RPCEndpoints:      d.RPCEndpoints,
		RPS:               d.RPS,
		GenesisHeight:     d.GenesisHeight,
		InternalTransfers: d.InternalTransfers,
		Enabled:           d.Enabled,
	}
}

// networkFromModel hides endpoint credentials.
func networkFromModel(n model.Network) networkDTO {
	endpoints := make([]string, 0, len(n.RPCEndpoints))
	for _, raw := range n.RPCEndpoints {
		if u, err := url.Parse(raw); err == nil {
			raw = u.Redacted()
		}
		endpoints = append(endpoints, raw)
	}
	return networkDTO{
		ID:                n.ID,
		Name:              n.Name,
		Architecture:      string(n.Architecture),
		Chain:             n.Chain,
		BlockTimeMS:       n.BlockTime.Milliseconds(),
		RPCEndpoints:      endpoints,
		RPS:               n.RPS,
		GenesisHeight:     n.GenesisHeight,
		InternalTransfers: n.InternalTransfers,
		Enabled:           n.Enabled,
	}
}

type checkpointDTO struct {
	Network      string    `json:"network"`
	Height       uint64    `json:"height"`
	Generation   uint64    `json:"generation"`
	RollbackFrom uint64    `json:"rollback_from,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type statusDTO struct {
	Network        string `json:"network"`
	LeaderInstance string `json:"leader_instance"`
	Height         uint64 `json:"height"`
	TipHeight      uint64 `json:"tip_height"`
	Lag            uint64 `json:"lag"`
	State          string `json:"state"`
	LastError      string `json:"last_error,omitempty"`
}

type entityDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type tagDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	RiskLevel string `json:"risk_level"`
}

type addressDTO struct {
	EntityID    int64  `json:"entity_id"`
	Description string `json:"description,omitempty"`
}

type labelDTO struct {
	Entity entityDTO `json:"entity"`
	Tags   []tagDTO  `json:"tags"`
}

type attributionDTO struct {
	Network    string    `json:"network"`
	Address    string    `json:"address"`
	Hops       int       `json:"hops"`
	Amount     string    `json:"amount"`
	Entity     entityDTO `json:"entity"`
	Tags       []tagDTO  `json:"tags"`
	RiskLevels []string  `json:"risk_levels"`
}

type assetFlowDTO struct {
	Asset    string `json:"asset"`
	Received string `json:"received"`
	Sent     string `json:"sent"`
	Balance  string `json:"balance"`
}

type infoDTO struct {
	Network    string           `json:"network"`
	Address    string           `json:"address"`
	Label      *labelDTO        `json:"label"`
	RiskLevels []string         `json:"risk_levels"`
	Assets     []assetFlowDTO   `json:"assets"`
	Sources    []attributionDTO `json:"sources"`
}

func entityFromModel(e model.Entity) entityDTO {
	return entityDTO{ID: e.ID, Name: e.Name, Description: e.Description}
}

func tagFromModel(t model.Tag) tagDTO {
	return tagDTO{ID: t.ID, Name: t.Name, RiskLevel: string(t.RiskLevel)}
}

func tagsFromModel(tags []model.Tag) []tagDTO {
	out := make([]tagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagFromModel(t))
	}
	return out
}

func riskLevels(levels []model.RiskLevel) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, string(l))
	}
	return out
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func attributionsFromModel(attrs []model.Attribution) []attributionDTO {
	out := make([]attributionDTO, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attributionDTO{
			Network:    a.Network,
			Address:    a.Address,
			Hops:       a.Hops,
			Amount:     amountString(a.Amount),
			Entity:     entityFromModel(a.Entity),
			Tags:       tagsFromModel(a.Tags),
			RiskLevels: riskLevels(a.RiskLevels),
		})
	}
	return out
}

func infoFromModel(info model.Info) infoDTO {
	out := infoDTO{
		Network:    info.Network,
		Address:    info.Address,
		RiskLevels: riskLevels(info.RiskLevels),
		Assets:     make([]assetFlowDTO, 0, len(info.Assets)),
		Sources:    attributionsFromModel(info.Sources),
	}
	if info.Label != nil {
		out.Label = &labelDTO{Entity: entityFromModel(info.Label.Entity), Tags: tagsFromModel(info.Label.Tags)}
	}
	for _, f := range info.Assets {
		out.Assets = append(out.Assets, assetFlowDTO{
			Asset:    f.Asset,
			Received: amountString(f.Received),
			Sent:     amountString(f.Sent),
			Balance:  amountString(f.Balance),
		})
	}
	return out
}
