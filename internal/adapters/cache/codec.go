package cache

import (
	"encoding/json"
	"fmt"

	"trip-allocation-service/internal/domain"
)

func encodeResult(res *domain.AllocationResult) ([]byte, error) {
	b, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode allocation result: %w", err)
	}
	return b, nil
}

func decodeResult(b []byte) (*domain.AllocationResult, error) {
	var res domain.AllocationResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("decode allocation result: %w", err)
	}
	return &res, nil
}
