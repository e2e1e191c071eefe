package blocks

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ToRows flattens an ordered block list into storage rows. The hydrated
// asset is reduced to its id foreign key, every remaining variant field is
// serialized into the payload, and position is assigned from the slice
// index. Row ids are left unset: replace-all persistence inserts fresh rows
// on every save.
func ToRows(projectID uuid.UUID, list []Block) ([]*Row, error) {
	rows := make([]*Row, 0, len(list))
	for i, b := range list {
		if !b.Type.Known() {
			return nil, fmt.Errorf("blocks: unknown block type %q at position %d", b.Type, i)
		}
		assetID, err := resolveAssetID(b)
		if err != nil {
			return nil, err
		}

		payload := b
		payload.ID = ""
		payload.Asset = nil
		payload.AssetID = ""
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("blocks: encode payload: %w", err)
		}

		rows = append(rows, &Row{
			ProjectID: projectID,
			Type:      b.Type,
			Position:  i,
			Payload:   string(encoded),
			AssetID:   assetID,
		})
	}
	return rows, nil
}

// FromRows reconstitutes the ordered block list from storage rows: rows are
// sorted by position ascending, payloads deserialized, and the persistent id
// and joined asset re-attached. The input slice is not mutated.
func FromRows(rows []*Row) ([]Block, error) {
	ordered := make([]*Row, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			ordered = append(ordered, row)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	list := make([]Block, 0, len(ordered))
	for _, row := range ordered {
		var b Block
		if err := json.Unmarshal([]byte(row.Payload), &b); err != nil {
			return nil, fmt.Errorf("blocks: decode payload for row %s: %w", row.ID, err)
		}
		b.Type = row.Type
		if row.ID != uuid.Nil {
			b.ID = row.ID.String()
		}
		if row.AssetID != nil {
			b.AssetID = row.AssetID.String()
		}
		b.Asset = row.Asset
		list = append(list, b)
	}
	return list, nil
}

func resolveAssetID(b Block) (*uuid.UUID, error) {
	raw := strings.TrimSpace(b.AssetID)
	if raw == "" && b.Asset != nil {
		raw = b.Asset.ID.String()
	}
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("blocks: invalid asset id %q: %w", raw, err)
	}
	return &id, nil
}
