package cmd

import (
	"os"

	"github.com/shirou/gopsutil/process"
	log "github.com/sirupsen/logrus"
)

func logResourceUsage() {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.WithError(err).Warn("cannot inspect the process")
		return
	}

	fields := log.Fields{}

	cpuPercent, err := p.CPUPercent()
	if err == nil {
		fields["cpu_percent"] = cpuPercent
	}

	memory, err := p.MemoryInfo()
	if err == nil {
		fields["rss_bytes"] = memory.RSS
	}

	log.WithFields(fields).Info("resource usage")
}
