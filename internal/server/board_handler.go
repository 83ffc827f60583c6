package server

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/devlab"
)

type ListCommentsRequest struct{}

type ListCommentsResponse struct {
	Comments []devlab.Comment `json:"comments"`
}

type AddCommentRequest struct {
	Author  string `json:"author" validate:"max=50"`
	Message string `json:"message" validate:"required,max=500"`
}

type AddCommentResponse struct {
	Comment devlab.Comment `json:"comment"`
}

// BoardHandler exposes the dev lab comment board.
type BoardHandler struct {
	board     *devlab.Board
	validator *config.Validator
}

func NewBoardHandler(board *devlab.Board) (*BoardHandler, error) {
	validator, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	return &BoardHandler{
		board:     board,
		validator: validator,
	}, nil
}

// ListComments returns the comments, newest first.
func (h *BoardHandler) ListComments(
	ctx context.Context,
	req *connect.Request[ListCommentsRequest],
) (*connect.Response[ListCommentsResponse], error) {
	comments, err := h.board.Comments(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("board.Comments() > %w", err))
	}
	if comments == nil {
		comments = []devlab.Comment{}
	}
	return connect.NewResponse(&ListCommentsResponse{
		Comments: comments,
	}), nil
}

func (h *BoardHandler) AddComment(
	ctx context.Context,
	req *connect.Request[AddCommentRequest],
) (*connect.Response[AddCommentResponse], error) {
	if err := validateRequest(h.validator, req.Msg); err != nil {
		return nil, err
	}

	comment, err := h.board.AddComment(ctx, req.Msg.Author, req.Msg.Message)
	if err != nil {
		var valErr *config.ValidationError
		if errors.As(err, &valErr) {
			return nil, invalidArgument(err)
		}
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("board.AddComment() > %w", err))
	}
	return connect.NewResponse(&AddCommentResponse{
		Comment: comment,
	}), nil
}
