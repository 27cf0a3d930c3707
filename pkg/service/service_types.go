package service

import (
	"github.com/ml8/counter-queue/pkg/queue"

	"encoding/json"
)

type EnrollRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	// Kept raw so that a non-integer tier can be rejected instead of coerced.
	Priority json.RawMessage `json:"priorityTier"`
}

type EnrollResponse struct {
	Client  queue.Client
	Pos     int
	Waiting []queue.Client
	Version int64
}

type CallRequest struct {
}

type CallResponse struct {
	Served  *queue.Client // nil when nobody was waiting
	Waiting []queue.Client
	History []queue.Client
	Version int64
}

type ListRequest struct {
}

type ListResponse struct {
	Waiting []queue.Client
	Version int64
}

type HistoryRequest struct {
}

type HistoryResponse struct {
	History []queue.Client
	Version int64
}

type NotifyRequest struct {
	Contact string
}

type NotifyResponse struct {
	Message string
}
