package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// The prompt flow mirrors the choices a first-time user has to make: what to
// download, how to package it, and where to put it. Each prompt only runs
// when the matching flag or config value is absent.

func promptMode(mode *string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("What would you like to download?").
			Options(
				huh.NewOption("Video (split into chapter files)", "video"),
				huh.NewOption("Audio only (split into chapter files)", "audio"),
			).
			Value(mode),
	)).Run()
}

func promptVideoOptions(container, res *string) error {
	var groups []*huh.Group
	if *container == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select output video container/format").
				Options(
					huh.NewOption("MP4 (widely compatible)", "mp4"),
					huh.NewOption("MKV (versatile container)", "mkv"),
					huh.NewOption("WEBM (VP9/Opus friendly)", "webm"),
				).
				Value(container),
		))
	}
	if *res == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select maximum video resolution").
				Options(
					huh.NewOption("Best available", "best"),
					huh.NewOption("2160p (4K)", "2160"),
					huh.NewOption("1440p (2K)", "1440"),
					huh.NewOption("1080p", "1080"),
					huh.NewOption("720p", "720"),
					huh.NewOption("480p", "480"),
					huh.NewOption("360p", "360"),
				).
				Value(res),
		))
	}
	if len(groups) == 0 {
		return nil
	}
	return huh.NewForm(groups...).Run()
}

func promptAudioOptions(format, bitrate *string) error {
	var groups []*huh.Group
	if *format == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select output audio format").
				Options(
					huh.NewOption("MP3", "mp3"),
					huh.NewOption("M4A (AAC)", "m4a"),
					huh.NewOption("FLAC (lossless)", "flac"),
					huh.NewOption("WAV (PCM)", "wav"),
					huh.NewOption("OPUS", "opus"),
				).
				Value(format),
		))
	}
	if *bitrate == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select target audio bitrate (kbps)").
				Options(
					huh.NewOption("128 kbps", "128"),
					huh.NewOption("160 kbps", "160"),
					huh.NewOption("192 kbps", "192"),
					huh.NewOption("256 kbps", "256"),
					huh.NewOption("320 kbps", "320"),
				).
				Value(bitrate),
		))
	}
	if len(groups) == 0 {
		return nil
	}
	return huh.NewForm(groups...).Run()
}

func promptDestination(dest *string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Destination folder for the files").
			Value(dest).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("destination is required")
				}
				return nil
			}),
	)).Run()
}
