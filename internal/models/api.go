package models

import "time"

// EntryRequest addresses a file or directory in the structure. Path is the
// slash-separated directory path; an empty path targets the top level.
type EntryRequest struct {
	Path    string  `json:"path"`
	Name    string  `json:"name" binding:"required"`
	Content *string `json:"content,omitempty"`
}

// ManagerInfo describes a running manager session.
type ManagerInfo struct {
	StartTime  time.Time `json:"start_time"`
	LastOpTime time.Time `json:"last_operation_time"`
	StoreDir   string    `json:"store_dir"`
	Filename   string    `json:"filename"`
}

// SystemResources summarizes host resource usage for the server-info
// endpoint.
type SystemResources struct {
	CPUCount      int     `json:"cpu_count"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryRSS     uint64  `json:"memory_rss"`
	MemoryPercent float32 `json:"memory_percent"`
	DiskTotal     uint64  `json:"disk_total"`
	DiskUsed      uint64  `json:"disk_used"`
	DiskPercent   float64 `json:"disk_percent"`
}

// ServerInfoResponse is the server-info endpoint payload.
type ServerInfoResponse struct {
	Uptime    float64         `json:"uptime"`
	IdleTime  float64         `json:"idle_time"`
	Resources SystemResources `json:"resources"`
}
