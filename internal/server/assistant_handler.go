// Package server provides Connect RPC handlers for the assistant and the dev lab board.
package server

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/gematria"
	"github.com/elliot-ia/elliot/internal/network"
	"github.com/elliot-ia/elliot/internal/responder"
)

type AskRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type AskResponse struct {
	Response         responder.Response `json:"response"`
	CalculationCount int64              `json:"calculation_count"`
}

type CalculateRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type CalculateResponse struct {
	Text           string            `json:"text"`
	Normalized     string            `json:"normalized"`
	Gematria       int               `json:"gematria"`
	Reduced        int               `json:"reduced"`
	LifePath       int               `json:"life_path"`
	Interpretation string            `json:"interpretation"`
	Entry          *dictionary.Entry `json:"entry,omitempty"`
}

type LookupWordRequest struct {
	Word string `json:"word" validate:"required,max=100"`
}

type LookupWordResponse struct {
	Word     string           `json:"word"`
	Entry    dictionary.Entry `json:"entry"`
	Gematria int              `json:"gematria"`
}

type ListProjectsRequest struct{}

type ListProjectsResponse struct {
	Projects network.Projects `json:"projects"`
}

// AssistantHandler answers chat messages without keeping a transcript.
// The calculation counter is shared by all requests.
type AssistantHandler struct {
	dict      dictionary.Dictionary
	selector  *responder.Selector
	counter   *gematria.Counter
	projects  network.Projects
	validator *config.Validator
}

func NewAssistantHandler(dict dictionary.Dictionary, projects network.Projects) (*AssistantHandler, error) {
	validator, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	counter := &gematria.Counter{}
	return &AssistantHandler{
		dict:      dict,
		selector:  responder.NewSelector(dict, responder.WithCounter(counter)),
		counter:   counter,
		projects:  projects,
		validator: validator,
	}, nil
}

// Ask returns the selected response for a chat message.
func (h *AssistantHandler) Ask(
	ctx context.Context,
	req *connect.Request[AskRequest],
) (*connect.Response[AskResponse], error) {
	if err := validateRequest(h.validator, req.Msg); err != nil {
		return nil, err
	}

	resp := h.selector.Select(req.Msg.Message)
	return connect.NewResponse(&AskResponse{
		Response:         resp,
		CalculationCount: h.counter.Count(),
	}), nil
}

// Calculate runs the full numeric analysis of a text.
func (h *AssistantHandler) Calculate(
	ctx context.Context,
	req *connect.Request[CalculateRequest],
) (*connect.Response[CalculateResponse], error) {
	if err := validateRequest(h.validator, req.Msg); err != nil {
		return nil, err
	}

	sum := h.counter.Sum(req.Msg.Text)
	resp := &CalculateResponse{
		Text:           req.Msg.Text,
		Normalized:     gematria.Normalize(req.Msg.Text),
		Gematria:       sum,
		Reduced:        gematria.Reduce(sum),
		LifePath:       gematria.LifePath(sum),
		Interpretation: gematria.Interpret(sum),
	}
	if entry, ok := h.dict.Lookup(req.Msg.Text); ok {
		resp.Entry = &entry
	}
	return connect.NewResponse(resp), nil
}

// LookupWord returns the dictionary entry of a word.
func (h *AssistantHandler) LookupWord(
	ctx context.Context,
	req *connect.Request[LookupWordRequest],
) (*connect.Response[LookupWordResponse], error) {
	if err := validateRequest(h.validator, req.Msg); err != nil {
		return nil, err
	}

	entry, ok := h.dict.Lookup(req.Msg.Word)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("word %q is not in the dictionary", req.Msg.Word))
	}
	return connect.NewResponse(&LookupWordResponse{
		Word:     dictionary.Key(req.Msg.Word),
		Entry:    entry,
		Gematria: gematria.Sum(req.Msg.Word),
	}), nil
}

func (h *AssistantHandler) ListProjects(
	ctx context.Context,
	req *connect.Request[ListProjectsRequest],
) (*connect.Response[ListProjectsResponse], error) {
	return connect.NewResponse(&ListProjectsResponse{
		Projects: h.projects,
	}), nil
}
