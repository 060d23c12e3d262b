package youtube

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	ytdl "github.com/kkdai/youtube/v2"
)

// DownloadAudio streams the best audio-only format to outputPath.
// The partial file is removed on any failure so the caller never has to
// clean up a half-written download.
func (c *Client) DownloadAudio(ctx context.Context, videoURL, outputPath string) error {
	video, err := c.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return fmt.Errorf("failed to get video: %w", err)
	}

	format := bestAudioFormat(video.Formats)
	if format == nil {
		return fmt.Errorf("no audio formats available")
	}

	stream, _, err := c.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, stream); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to download: %w", err)
	}

	return nil
}

// bestAudioFormat picks the highest-bitrate audio-only format
func bestAudioFormat(formats ytdl.FormatList) *ytdl.Format {
	var audio []*ytdl.Format
	for i := range formats {
		if strings.HasPrefix(formats[i].MimeType, "audio/") {
			audio = append(audio, &formats[i])
		}
	}
	if len(audio) == 0 {
		return nil
	}
	sort.Slice(audio, func(i, j int) bool {
		return audio[i].Bitrate > audio[j].Bitrate
	})
	return audio[0]
}
