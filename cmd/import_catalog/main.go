package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"parfumai/internal/catalog"
	"parfumai/internal/config"
	"parfumai/internal/db"
	"parfumai/internal/store/hosted"
	"parfumai/models"
)

var (
	cleanWhitespace = regexp.MustCompile(`\s+`)

	openDatabase   = db.Configure
	loadConfigFunc = config.Load
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_catalog <file.csv|file.pdf> [owner-id]")
		os.Exit(2)
	}

	owner := ""
	if len(os.Args) > 2 {
		owner = os.Args[2]
	}

	if err := run(context.Background(), os.Args[1], owner); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path, owner string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("catalog path must not be empty")
	}

	entries, err := readEntries(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	cfg, err := loadConfigFunc()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := openDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ownerID, err := resolveImportOwner(ctx, database, owner)
	if err != nil {
		return fmt.Errorf("resolve owner: %w", err)
	}

	imported, skipped, err := importEntries(ctx, database, ownerID, entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d ingredients for %s from %s (%d already present)\n", imported, ownerID, filepath.Base(path), skipped)
	return nil
}

// importEntries saves entries as custom ingredients of owner. Names the owner
// already has are skipped.
func importEntries(ctx context.Context, database *gorm.DB, owner string, entries []catalog.Ingredient) (imported, skipped int, err error) {
	target := hosted.New(database, owner)

	existing, err := target.ListCustomIngredients(ctx)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, ingredient := range existing {
		seen[strings.ToLower(ingredient.Name)] = struct{}{}
	}

	for idx, entry := range entries {
		key := strings.ToLower(entry.Name)
		if _, ok := seen[key]; ok {
			skipped++
			continue
		}
		if _, err := target.CreateCustomIngredient(ctx, entry); err != nil {
			return imported, skipped, fmt.Errorf("entry %d (%s): %w", idx+1, entry.Name, err)
		}
		seen[key] = struct{}{}
		imported++
	}
	return imported, skipped, nil
}

// resolveImportOwner accepts an explicit owner id, then PARFUMAI_IMPORT_OWNER_EMAIL,
// then the first user.
func resolveImportOwner(ctx context.Context, database *gorm.DB, owner string) (string, error) {
	if owner = strings.TrimSpace(owner); owner != "" {
		return owner, nil
	}
	if database == nil {
		return "", fmt.Errorf("database handle is nil")
	}

	var user models.User
	if email := strings.TrimSpace(os.Getenv("PARFUMAI_IMPORT_OWNER_EMAIL")); email != "" {
		if err := database.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
			return "", fmt.Errorf("find owner by email %q: %w", strings.ToLower(email), err)
		}
		return user.OwnerID(), nil
	}

	if err := database.WithContext(ctx).Order("id asc").First(&user).Error; err != nil {
		return "", fmt.Errorf("find default owner: %w", err)
	}
	return user.OwnerID(), nil
}

func readEntries(path string) ([]catalog.Ingredient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractTextFromPDF(data)
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		return parseLines(text)
	default:
		return readCSV(bytes.NewReader(data))
	}
}

func readCSV(r io.Reader) ([]catalog.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	for idx, key := range rows[0] {
		header[idx] = strings.ToLower(strings.TrimSpace(key))
	}

	entries := make([]catalog.Ingredient, 0, len(rows)-1)
	for line, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx < len(row) {
				record[key] = row[idx]
			}
		}
		if strings.TrimSpace(record["name"]) == "" {
			continue
		}
		entry, err := buildIngredient(record["name"], record["type"], record["category"], record["description"], record["purpose"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseLines reads one "name | type | category | description | purpose" entry
// per line. Lines without a separator are headings or page furniture.
func parseLines(text string) ([]catalog.Ingredient, error) {
	var entries []catalog.Ingredient
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		fields := strings.Split(line, "|")
		for len(fields) < 5 {
			fields = append(fields, "")
		}
		if strings.EqualFold(strings.TrimSpace(fields[0]), "name") {
			continue
		}
		entry, err := buildIngredient(fields[0], fields[1], fields[2], fields[3], fields[4])
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", strings.TrimSpace(line), err)
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, errors.New("no catalog entries found")
	}
	return entries, nil
}

func buildIngredient(name, kind, category, description, purpose string) (catalog.Ingredient, error) {
	name = normalizeText(name)
	if name == "" {
		return catalog.Ingredient{}, errors.New("name is required")
	}
	parsed, err := catalog.ParseType(kind)
	if err != nil {
		return catalog.Ingredient{}, err
	}
	return catalog.Ingredient{
		Name:        name,
		Type:        parsed,
		Category:    strings.ToLower(normalizeText(category)),
		Description: normalizeText(description),
		Purpose:     normalizeText(purpose),
		IsCustom:    true,
	}, nil
}

func normalizeText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return cleanWhitespace.ReplaceAllString(value, " ")
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
