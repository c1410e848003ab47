// services/pipeline/memcheck.go
package pipeline

import (
	"log/slog"

	"github.com/shirou/gopsutil/v4/mem"
)

// Available-memory thresholds for the OCR model, in bytes.
const (
	memComfortable = 2 << 30
	memTight       = 1 << 30
)

// MemoryStatus classifies available memory for an OCR run.
type MemoryStatus string

const (
	MemoryOK       MemoryStatus = "ok"
	MemoryDegraded MemoryStatus = "degraded"
	MemoryLow      MemoryStatus = "low"
	MemoryUnknown  MemoryStatus = "unknown"
)

// ClassifyAvailable maps an available-byte count onto a status.
func ClassifyAvailable(avail uint64) MemoryStatus {
	switch {
	case avail >= memComfortable:
		return MemoryOK
	case avail >= memTight:
		return MemoryDegraded
	default:
		return MemoryLow
	}
}

// CheckMemory reports the current status and available bytes.
func CheckMemory() (MemoryStatus, uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemoryUnknown, 0
	}
	return ClassifyAvailable(vm.Available), vm.Available
}

// WarnIfLowMemory logs when available memory looks too tight for the OCR
// model. Warning only: the chain still runs, and an OOM kill stays an
// externally imposed termination.
func WarnIfLowMemory() {
	status, avail := CheckMemory()
	switch status {
	case MemoryDegraded:
		slog.Warn("memory is tight for OCR; expect slow inference", "available_bytes", avail)
	case MemoryLow:
		slog.Warn("memory is low; OCR is likely to be killed", "available_bytes", avail)
	}
}
