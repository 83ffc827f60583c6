package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
)

const (
	AssistantServiceName = "elliot.v1.AssistantService"
	BoardServiceName     = "elliot.v1.BoardService"
)

const (
	AssistantServiceAskProcedure          = "/elliot.v1.AssistantService/Ask"
	AssistantServiceCalculateProcedure    = "/elliot.v1.AssistantService/Calculate"
	AssistantServiceLookupWordProcedure   = "/elliot.v1.AssistantService/LookupWord"
	AssistantServiceListProjectsProcedure = "/elliot.v1.AssistantService/ListProjects"

	BoardServiceListCommentsProcedure = "/elliot.v1.BoardService/ListComments"
	BoardServiceAddCommentProcedure   = "/elliot.v1.BoardService/AddComment"
)

// Options returns the options shared by handlers and clients of both services.
func Options() []connect.Option {
	return []connect.Option{
		connect.WithCodec(jsonCodec{}),
	}
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	result := []connect.HandlerOption{
		connect.WithInterceptors(NewLoggingInterceptor()),
	}
	for _, opt := range Options() {
		result = append(result, opt)
	}
	return append(result, opts...)
}

// NewAssistantServiceHandler builds an HTTP handler for the assistant service
// and returns the path on which to mount it.
func NewAssistantServiceHandler(h *AssistantHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	ask := connect.NewUnaryHandler(AssistantServiceAskProcedure, h.Ask, opts...)
	calculate := connect.NewUnaryHandler(AssistantServiceCalculateProcedure, h.Calculate, opts...)
	lookupWord := connect.NewUnaryHandler(AssistantServiceLookupWordProcedure, h.LookupWord, opts...)
	listProjects := connect.NewUnaryHandler(AssistantServiceListProjectsProcedure, h.ListProjects, opts...)

	return "/" + AssistantServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AssistantServiceAskProcedure:
			ask.ServeHTTP(w, r)
		case AssistantServiceCalculateProcedure:
			calculate.ServeHTTP(w, r)
		case AssistantServiceLookupWordProcedure:
			lookupWord.ServeHTTP(w, r)
		case AssistantServiceListProjectsProcedure:
			listProjects.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewBoardServiceHandler builds an HTTP handler for the board service and
// returns the path on which to mount it.
func NewBoardServiceHandler(h *BoardHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listComments := connect.NewUnaryHandler(BoardServiceListCommentsProcedure, h.ListComments, opts...)
	addComment := connect.NewUnaryHandler(BoardServiceAddCommentProcedure, h.AddComment, opts...)

	return "/" + BoardServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BoardServiceListCommentsProcedure:
			listComments.ServeHTTP(w, r)
		case BoardServiceAddCommentProcedure:
			addComment.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewLoggingInterceptor logs every unary call with its procedure, duration and code.
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				slog.String("procedure", req.Spec().Procedure),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("code", connect.CodeOf(err).String()), slog.Any("error", err))
				slog.Warn("rpc failed", attrs...)
			} else {
				slog.Debug("rpc served", attrs...)
			}
			return resp, err
		}
	}
}
