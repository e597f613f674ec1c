package iops

import (
	"fmt"
	"math"
)

// BlockSizeKiB is the I/O size the documented IOPS figures are measured at.
const BlockSizeKiB = 4

// Speed is an estimated sequential-equivalent throughput in MiB/s.
type Speed struct {
	ReadMiBps  float64 `json:"readMiBps" yaml:"readMiBps"`
	WriteMiBps float64 `json:"writeMiBps" yaml:"writeMiBps"`
}

// EstimateSpeed converts an IOPS profile into throughput:
//
//	MiB/s = IOPS × 4 KiB / 1024
//
// Each figure is rounded to 2 decimal places.
func EstimateSpeed(p Profile) Speed {
	return Speed{
		ReadMiBps:  round2(float64(p.RandomReadIOPS) * BlockSizeKiB / 1024),
		WriteMiBps: round2(float64(p.WriteIOPS) * BlockSizeKiB / 1024),
	}
}

// ReadString formats the read throughput, e.g. "158.69 MiB/s".
func (s Speed) ReadString() string {
	return fmt.Sprintf("%.2f MiB/s", s.ReadMiBps)
}

// WriteString formats the write throughput, e.g. "79.35 MiB/s".
func (s Speed) WriteString() string {
	return fmt.Sprintf("%.2f MiB/s", s.WriteMiBps)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
