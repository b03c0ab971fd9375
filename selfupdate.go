package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/minio/selfupdate"
	"github.com/ulikunitz/xz"
	"golang.org/x/mod/semver"
)

var githubAPI = "https://api.github.com"

// releaseAssetURL returns the download URL of the xz-compressed binary for
// the given release tag and platform.
func releaseAssetURL(tag, goos, goarch string) string {
	ext := "xz"
	if goos == "windows" {
		ext = "exe.xz"
	}
	return fmt.Sprintf("https://github.com/%s/releases/download/%s/mkico-%s-%s.%s",
		GithubRepo, tag, goos, goarch, ext)
}

func latestRelease() (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPI, GithubRepo)
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}

	var release struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("parse release info: %w", err)
	}
	return release.Name, nil
}

func selfUpdate() error {
	fmt.Printf("Current version: %s\n", versionString())

	latest, err := latestRelease()
	if err != nil {
		return err
	}
	fmt.Printf("Latest release: %s\n", latest)

	switch semver.Compare(latest, Version) {
	case -1:
		fmt.Println("You have a newer version than the latest release.")
		return nil
	case 0:
		fmt.Println("Already up to date.")
		return nil
	case 1:
		fmt.Println("New version available, upgrading...")
		if Version == "v0.0.0" {
			fmt.Print("Development build detected, press Enter to proceed: ")
			bufio.NewReader(os.Stdin).ReadBytes('\n')
		}
	}

	downloadURL := releaseAssetURL(latest, runtime.GOOS, runtime.GOARCH)

	opts := selfupdate.Options{}
	if err := opts.CheckPermissions(); err != nil {
		fmt.Printf("Cannot update in place (permission denied).\nDownload manually: %s\n", downloadURL)
		return nil
	}

	fmt.Printf("Downloading %s...\n", downloadURL)
	resp, err := http.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned HTTP %d", resp.StatusCode)
	}

	r, err := xz.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("xz decompression: %w", err)
	}

	if err := selfupdate.Apply(r, opts); err != nil {
		return err
	}

	fmt.Printf("Updated to %s successfully.\n", latest)
	return nil
}
