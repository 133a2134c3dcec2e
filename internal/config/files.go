package config

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/captainpacket/fwd/internal/models"
)

// Column headers of the credential CSV that the AWS console produces when
// an access key is created for an IAM user.
const (
	accessKeyHeader = "Access key ID"
	secretKeyHeader = "Secret access key"
)

// LoadCSVCredentials reads admin user credentials from the setup CSV. Only
// the header row and the first value row are consulted; any further rows
// are ignored.
func LoadCSVCredentials(path string) (models.Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("open credential file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return models.Credentials{}, fmt.Errorf("read credential file header: %w", err)
	}
	values, err := r.Read()
	if err != nil {
		return models.Credentials{}, fmt.Errorf("read credential file values: %w", err)
	}
	if len(values) < len(header) {
		return models.Credentials{}, fmt.Errorf("credential file has %d values for %d columns", len(values), len(header))
	}

	row := make(map[string]string, len(header))
	for i, h := range header {
		row[strings.TrimSpace(h)] = strings.TrimSpace(values[i])
	}

	creds := models.Credentials{
		AccessKeyID:     row[accessKeyHeader],
		SecretAccessKey: row[secretKeyHeader],
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return models.Credentials{}, fmt.Errorf("credential file is missing %q or %q column", accessKeyHeader, secretKeyHeader)
	}
	return creds, nil
}

// LoadRegions reads the newline-delimited region file. Blank lines are
// skipped.
func LoadRegions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open regions file: %w", err)
	}
	defer f.Close()

	var regions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		region := strings.TrimSpace(scanner.Text())
		if region == "" {
			continue
		}
		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("regions file %s is empty", path)
	}
	return regions, nil
}

// LoadAppCredentials reads the inventory API basic-auth credentials: line 1
// is the username, line 2 the password.
func LoadAppCredentials(path string) (username, password string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("open app credentials file: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) == "" || strings.TrimSpace(lines[1]) == "" {
		return "", "", fmt.Errorf("app credentials file %s must contain username and password lines", path)
	}
	return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), nil
}
