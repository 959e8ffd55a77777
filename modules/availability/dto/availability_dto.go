package dto

import (
	"time"

	"meetgrid/modules/availability/entity"
)

// ===================== Request DTOs =====================

// SlotDTO addresses one grid cell
type SlotDTO struct {
	DateIndex int `json:"date_index"`
	TimeIndex int `json:"time_index"`
}

// UpsertResponseRequest submits one participant's full selection
type UpsertResponseRequest struct {
	ParticipantEmail string    `json:"participant_email"`
	PaintMode        string    `json:"paint_mode" validate:"required"`
	Timezone         string    `json:"timezone"`
	Slots            []SlotDTO `json:"slots"`
}

// ===================== Response DTOs =====================

// ResponseDTO is one committed participant selection
type ResponseDTO struct {
	ParticipantName  string    `json:"participant_name"`
	ParticipantEmail string    `json:"participant_email,omitempty"`
	PaintMode        string    `json:"paint_mode"`
	Timezone         string    `json:"timezone"`
	Slots            []SlotDTO `json:"slots"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HeatmapEntryDTO is the aggregate for one slot
type HeatmapEntryDTO struct {
	DateIndex    int      `json:"date_index"`
	TimeIndex    int      `json:"time_index"`
	Count        int      `json:"count"`
	Participants []string `json:"participants"`
	Ratio        float64  `json:"ratio"`
}

// HeatmapResponse is the full aggregated overlap view for an event
type HeatmapResponse struct {
	EventCode         string            `json:"event_code"`
	TotalParticipants int               `json:"total_participants"`
	MaxOverlap        int               `json:"max_overlap"`
	OverlapLevels     []int             `json:"overlap_levels"`
	Entries           []HeatmapEntryDTO `json:"entries"`
}

// ===================== Mapper Functions =====================

// ToSlots maps request slots to entity slots
func ToSlots(in []SlotDTO) []entity.Slot {
	slots := make([]entity.Slot, 0, len(in))
	for _, s := range in {
		slots = append(slots, entity.Slot{DateIndex: s.DateIndex, TimeIndex: s.TimeIndex})
	}
	return slots
}

// ToResponseDTO maps a committed selection to its DTO
func ToResponseDTO(sel *entity.ParticipantSelection) *ResponseDTO {
	resp := &ResponseDTO{
		ParticipantName: sel.ParticipantName,
		PaintMode:       string(sel.PaintMode),
		Timezone:        sel.Timezone,
		Slots:           make([]SlotDTO, 0, len(sel.Slots)),
		UpdatedAt:       sel.UpdatedAt,
	}
	if sel.ParticipantEmail != nil {
		resp.ParticipantEmail = *sel.ParticipantEmail
	}
	for _, slot := range sel.Slots {
		resp.Slots = append(resp.Slots, SlotDTO{DateIndex: slot.DateIndex, TimeIndex: slot.TimeIndex})
	}
	return resp
}

// ToHeatmapResponse flattens a heatmap into its wire shape, ordered by
// dateIndex then timeIndex.
func ToHeatmapResponse(eventCode string, heatmap *entity.Heatmap) *HeatmapResponse {
	resp := &HeatmapResponse{
		EventCode:         eventCode,
		TotalParticipants: heatmap.TotalParticipants,
		MaxOverlap:        heatmap.MaxOverlapCount(),
		OverlapLevels:     heatmap.OverlapLevels(),
		Entries:           make([]HeatmapEntryDTO, 0, len(heatmap.Entries)),
	}

	for d := 0; d < heatmap.Grid.DateCount(); d++ {
		for t := 0; t < heatmap.Grid.TicksPerDate(); t++ {
			slot := entity.Slot{DateIndex: d, TimeIndex: t}
			entry := heatmap.Entry(slot)
			resp.Entries = append(resp.Entries, HeatmapEntryDTO{
				DateIndex:    d,
				TimeIndex:    t,
				Count:        entry.Count,
				Participants: entry.Participants,
				Ratio:        heatmap.IntensityRatio(slot),
			})
		}
	}

	return resp
}
