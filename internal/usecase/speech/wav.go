package speech

import (
	"encoding/binary"
	"regexp"
	"strconv"
	"strings"
)

// pcmConfig describes raw PCM as announced in a Gemini audio mime type,
// e.g. "audio/L16;codec=pcm;rate=24000".
type pcmConfig struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

var (
	rateRe     = regexp.MustCompile(`rate=(\d+)`)
	channelsRe = regexp.MustCompile(`channels=(\d+)`)
	depthRe    = regexp.MustCompile(`audio/L(\d+)`)
)

// parsePCMConfig extracts PCM parameters from the mime type, falling
// back to Gemini TTS defaults (24kHz mono 16-bit) for missing fields.
func parsePCMConfig(mimeType string) pcmConfig {
	cfg := pcmConfig{SampleRate: 24000, Channels: 1, BitDepth: 16}

	if m := rateRe.FindStringSubmatch(mimeType); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			cfg.SampleRate = v
		}
	}
	if m := channelsRe.FindStringSubmatch(mimeType); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			cfg.Channels = v
		}
	}
	if m := depthRe.FindStringSubmatch(mimeType); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			cfg.BitDepth = v
		}
	}
	return cfg
}

// isRawPCM reports whether the mime type describes headerless PCM that
// needs a WAV container before browsers will play it.
func isRawPCM(mimeType string) bool {
	mt := strings.ToLower(mimeType)
	return strings.HasPrefix(mt, "audio/l") || strings.Contains(mt, "codec=pcm")
}

// wrapPCMInWAV prepends the 44-byte RIFF header so the raw samples play
// as a standard WAV file.
func wrapPCMInWAV(pcm []byte, cfg pcmConfig) []byte {
	byteRate := cfg.SampleRate * cfg.Channels * cfg.BitDepth / 8
	blockAlign := cfg.Channels * cfg.BitDepth / 8
	dataLen := len(pcm)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM format
	binary.LittleEndian.PutUint16(header[22:24], uint16(cfg.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(cfg.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(cfg.BitDepth))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	return append(header, pcm...)
}
