package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/hostel-management-api/internal/model"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
)

// RoomHandler serves the shared room surface mounted under /rooms.
type RoomHandler struct {
	roomRepo repository.RoomRepository
}

func NewRoomHandler(roomRepo repository.RoomRepository) *RoomHandler {
	return &RoomHandler{roomRepo: roomRepo}
}

type createRoomRequest struct {
	RoomNumber string   `json:"roomNumber" validate:"required"`
	Floor      int      `json:"floor"      validate:"gte=0"`
	Capacity   int      `json:"capacity"   validate:"required,gt=0"`
	Type       string   `json:"type"       validate:"required"`
	Rent       float64  `json:"rent"       validate:"gte=0"`
	Facilities []string `json:"facilities"`
}

type updateRoomRequest struct {
	Capacity   *int      `json:"capacity"   validate:"omitempty,gt=0"`
	Type       *string   `json:"type"`
	Status     *string   `json:"status"     validate:"omitempty,oneof=available occupied maintenance reserved"`
	Rent       *float64  `json:"rent"       validate:"omitempty,gte=0"`
	Facilities *[]string `json:"facilities"`
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	createRoom(w, r, h.roomRepo)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepo.ListRooms(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *RoomHandler) Available(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepo.ListAvailableRooms(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomRepo.GetRoom(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"room": room})
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRoomRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.roomRepo.UpdateRoom(r.Context(), chi.URLParam(r, "roomId"), repository.UpdateRoomParams{
		Capacity:   req.Capacity,
		Type:       req.Type,
		Status:     req.Status,
		Rent:       req.Rent,
		Facilities: req.Facilities,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Room updated successfully",
		"room":    room,
	})
}

// createRoom is shared with the warden surface, which exposes room
// creation under its own prefix.
func createRoom(w http.ResponseWriter, r *http.Request, roomRepo repository.RoomRepository) {
	var req createRoomRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := roomRepo.CreateRoom(r.Context(), &model.Room{
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		Type:       req.Type,
		Status:     model.RoomStatusAvailable,
		Rent:       req.Rent,
		Facilities: req.Facilities,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Room created successfully",
		"room":    room,
	})
}
