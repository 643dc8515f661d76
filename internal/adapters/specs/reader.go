// Package specs reads a hardware summary from procfs. Linux only; on other
// platforms the reader returns what it can and leaves the rest empty.
package specs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/luxfi/ai-bridge/internal/domain"
)

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) ReadSpecs(ctx context.Context) (domain.SystemSpecs, error) {
	if err := ctx.Err(); err != nil {
		return domain.SystemSpecs{}, err
	}

	model, cores, err := readCPUInfo()
	if err != nil {
		return domain.SystemSpecs{}, err
	}
	return domain.SystemSpecs{
		Model:   model,
		Cores:   cores,
		Threads: runtime.NumCPU(),
		Memory:  readMemTotal(),
	}, nil
}

func readCPUInfo() (string, int, error) {
	file, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "", 0, fmt.Errorf("open /proc/cpuinfo: %w", err)
	}
	defer file.Close()

	info := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		info[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return "", 0, fmt.Errorf("read /proc/cpuinfo: %w", err)
	}

	model := info["model name"]
	if model == "" {
		return "", 0, fmt.Errorf("CPU model name not found in /proc/cpuinfo")
	}
	return model, parseLeadingInt(info["cpu cores"]), nil
}

func readMemTotal() string {
	file, err := os.Open("/proc/meminfo")
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return ""
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return ""
		}
		return formatMemKB(kb)
	}
	return ""
}

func formatMemKB(kb float64) string {
	gb := kb / (1024 * 1024)
	if gb >= 1 {
		return fmt.Sprintf("%.1f GB", gb)
	}
	return fmt.Sprintf("%.0f MB", kb/1024)
}

func parseLeadingInt(value string) int {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0
	}
	parsed, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return parsed
}
