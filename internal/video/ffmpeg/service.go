package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultTimeout bounds a single ffprobe run
const DefaultTimeout = 30 * time.Second

// Service reads media metadata with ffprobe
type Service struct {
	config *Config
	logger logger.Logger
	probe  func(path string, timeout time.Duration) (string, error)
}

// Config represents FFmpeg configuration
type Config struct {
	Timeout time.Duration
}

// VideoMetadata represents video file metadata
type VideoMetadata struct {
	Duration   float64 // seconds
	Width      int
	Height     int
	Format     string
	VideoCodec string
	AudioCodec string
	Bitrate    int64 // bits per second
}

type probeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// NewService creates a new FFmpeg service
func NewService(config *Config, logger logger.Logger) *Service {
	if config == nil {
		config = &Config{}
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Service{
		config: config,
		logger: logger,
		probe: func(path string, timeout time.Duration) (string, error) {
			return ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
		},
	}
}

// GetMetadata extracts metadata from a video file
func (s *Service) GetMetadata(ctx context.Context, filePath string) (*VideoMetadata, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("file does not exist: %s: %w", filePath, err)
	}

	timeout := s.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, ctx.Err()
	}

	output, err := s.probe(filePath, timeout)
	if err != nil {
		s.logger.LogError(err, fmt.Sprintf("Failed to get video metadata: path=%s", filePath))
		return nil, fmt.Errorf("failed to get video metadata: %w", err)
	}

	metadata, err := parseProbe(output)
	if err != nil {
		return nil, err
	}

	s.logger.LogDebug("Video metadata extracted", map[string]interface{}{
		"path":     filePath,
		"duration": metadata.Duration,
		"width":    metadata.Width,
		"height":   metadata.Height,
		"format":   metadata.Format,
	})
	return metadata, nil
}

// Duration returns the media duration in seconds
func (s *Service) Duration(ctx context.Context, filePath string) (float64, error) {
	metadata, err := s.GetMetadata(ctx, filePath)
	if err != nil {
		return 0, err
	}
	return metadata.Duration, nil
}

// parseProbe reads ffprobe's JSON output. The container duration wins; the
// first stream that reports one is the fallback.
func parseProbe(output string) (*VideoMetadata, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(output), &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	metadata := &VideoMetadata{Format: out.Format.FormatName}
	metadata.Duration, _ = strconv.ParseFloat(out.Format.Duration, 64)
	metadata.Bitrate, _ = strconv.ParseInt(out.Format.BitRate, 10, 64)

	for _, stream := range out.Streams {
		switch stream.CodecType {
		case "video":
			if metadata.VideoCodec == "" {
				metadata.VideoCodec = stream.CodecName
				metadata.Width = stream.Width
				metadata.Height = stream.Height
			}
		case "audio":
			if metadata.AudioCodec == "" {
				metadata.AudioCodec = stream.CodecName
			}
		}
		if metadata.Duration <= 0 {
			metadata.Duration, _ = strconv.ParseFloat(stream.Duration, 64)
		}
	}

	if metadata.Duration <= 0 {
		return nil, fmt.Errorf("ffprobe reported no duration")
	}
	return metadata, nil
}
