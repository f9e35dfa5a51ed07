// Package device decides where the model runtime places model weights.
//
// Detection order is NVIDIA (via nvidia-smi), then Apple Silicon (Metal),
// then CPU. The DEVICE setting can force either end.
package device

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const detectTimeout = 10 * time.Second

// Kind is the class of compute device.
type Kind int

const (
	// KindCPU means no accelerator; weights stay in system memory.
	KindCPU Kind = iota
	// KindCUDA is an NVIDIA GPU.
	KindCUDA
	// KindMetal is an Apple Silicon GPU.
	KindMetal
	// KindGPU is an accelerator forced by configuration without detection.
	KindGPU
)

// String returns the string representation of the device kind.
func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindCUDA:
		return "cuda"
	case KindMetal:
		return "metal"
	case KindGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Info describes the chosen device.
type Info struct {
	Kind   Kind
	Name   string
	VramGB uint32
}

// Accelerated reports whether the device is an accelerator.
func (i Info) Accelerated() bool {
	return i.Kind != KindCPU
}

// String returns a short human readable description.
func (i Info) String() string {
	if i.VramGB > 0 {
		return fmt.Sprintf("%s (%s, %dGB VRAM)", i.Kind, i.Name, i.VramGB)
	}
	if i.Name != "" {
		return fmt.Sprintf("%s (%s)", i.Kind, i.Name)
	}
	return i.Kind.String()
}

// LoadArgs returns the llama.cpp server arguments that place the model on this device.
func (i Info) LoadArgs(gpuLayers int) []string {
	if !i.Accelerated() {
		gpuLayers = 0
	}
	return []string{"--n-gpu-layers", strconv.Itoa(gpuLayers)}
}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Detector finds the best available device.
type Detector struct {
	run  CommandRunner
	goos string
	arch string
}

// NewDetector creates a Detector that shells out to vendor tools.
func NewDetector() *Detector {
	return &Detector{
		run:  execRunner,
		goos: runtime.GOOS,
		arch: runtime.GOARCH,
	}
}

// Resolve picks a device for mode "auto", "gpu" or "cpu".
func (d *Detector) Resolve(ctx context.Context, mode string) Info {
	switch mode {
	case "cpu":
		return Info{Kind: KindCPU, Name: "forced"}
	case "gpu":
		if info := d.Detect(ctx); info.Accelerated() {
			return info
		}
		return Info{Kind: KindGPU, Name: "forced"}
	default:
		return d.Detect(ctx)
	}
}

// Detect returns the first accelerator found, or CPU.
func (d *Detector) Detect(ctx context.Context) Info {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, detectTimeout)
		defer cancel()
	}

	if info, ok := d.detectNvidia(ctx); ok {
		return info
	}
	if d.goos == "darwin" && d.arch == "arm64" {
		return Info{Kind: KindMetal, Name: "Apple Silicon"}
	}
	return Info{Kind: KindCPU, Name: d.goos + "/" + d.arch}
}

func (d *Detector) detectNvidia(ctx context.Context) (Info, bool) {
	output, err := d.run(ctx, "nvidia-smi",
		"--query-gpu=name,memory.total,driver_version",
		"--format=csv,noheader,nounits")
	if err != nil || len(output) == 0 {
		return Info{}, false
	}

	line := strings.TrimSpace(strings.Split(strings.TrimSpace(string(output)), "\n")[0])

	// nvidia-smi outputs CSV with ", " as delimiter
	parts := strings.Split(line, ", ")
	if len(parts) < 3 {
		return Info{}, false
	}

	vramMB, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Info{}, false
	}

	return Info{
		Kind:   KindCUDA,
		Name:   "NVIDIA " + strings.TrimSpace(parts[0]),
		VramGB: uint32(vramMB/1024.0 + 0.5),
	}, true
}
