package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fplmate/internal/models"
)

// MissingMetadataPolicy decides what happens to a player folder whose id has
// no row in the metadata table.
type MissingMetadataPolicy string

const (
	PolicyAbort MissingMetadataPolicy = "abort"
	PolicySkip  MissingMetadataPolicy = "skip"
)

// Aggregator joins per-player gameweek files with the season metadata
type Aggregator struct {
	policy MissingMetadataPolicy
	logger *logrus.Entry
}

func NewAggregator(policy MissingMetadataPolicy, logger *logrus.Entry) *Aggregator {
	if policy == "" {
		policy = PolicyAbort
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Aggregator{
		policy: policy,
		logger: logger.WithField("component", "aggregator"),
	}
}

// Aggregate reads every name_id folder under playersDir and returns one row
// per gameweek annotated with the player's metadata. Folders are visited in
// lexical order and plain files are ignored.
func (a *Aggregator) Aggregate(playersDir, metaPath string) ([]models.GameweekRow, error) {
	meta, err := LoadPlayerMeta(metaPath)
	if err != nil {
		return nil, fmt.Errorf("load player metadata: %w", err)
	}

	entries, err := os.ReadDir(playersDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.ResourceNotFoundError{Path: playersDir, Err: err}
		}
		return nil, fmt.Errorf("read players directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var rows []models.GameweekRow
	skipped := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name, playerID, err := ParsePlayerFolder(entry.Name())
		if err != nil {
			return nil, err
		}

		pm, ok := meta[playerID]
		if !ok {
			if a.policy == PolicySkip {
				a.logger.WithFields(logrus.Fields{
					"player_id":   playerID,
					"player_name": name,
					"folder":      entry.Name(),
				}).Warn("No metadata for player, skipping")
				skipped++
				continue
			}
			return nil, &models.DataIntegrityError{
				Source:      metaPath,
				PlayerID:    playerID,
				HasPlayerID: true,
				Reason:      fmt.Sprintf("player %q has gameweek data but no metadata row", name),
			}
		}

		records, err := LoadGameweeks(filepath.Join(playersDir, entry.Name(), GameweekFile), playerID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			rows = append(rows, models.GameweekRow{PlayerRecord: rec, Meta: pm})
		}
	}

	a.logger.WithFields(logrus.Fields{
		"players_dir": playersDir,
		"rows":        len(rows),
		"skipped":     skipped,
	}).Debug("Aggregated gameweek data")

	return rows, nil
}
