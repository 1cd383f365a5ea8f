package repo

import (
	"context"

	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/platform/store/pg"
	dom "trainerbot/internal/services/materials/domain"
)

// PG reads materials from the task_materials table
type PG struct {
	db *pg.PG
}

var _ dom.SourcePort = (*PG)(nil)

// NewPG returns a Postgres source
func NewPG(db *pg.PG) *PG {
	if db == nil {
		panic("materials.PG requires a non nil pool")
	}
	return &PG{db: db}
}

const selectMaterials = `
SELECT task_id, title, description, download_url, download_filename, course_url
FROM task_materials
ORDER BY task_id`

// Load implements domain.SourcePort
func (p *PG) Load(ctx context.Context) ([]dom.Material, error) {
	rows, err := p.db.Query(ctx, selectMaterials)
	if err != nil {
		return nil, perr.FromPostgres(err, "materials: query")
	}
	defer rows.Close()

	var out []dom.Material
	for rows.Next() {
		var m dom.Material
		if err := rows.Scan(&m.TaskID, &m.Title, &m.Description, &m.DownloadURL, &m.DownloadFilename, &m.CourseURL); err != nil {
			return nil, perr.FromPostgres(err, "materials: scan")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "materials: rows")
	}
	return out, nil
}

// Schema creates the table the PG source reads
const Schema = `
CREATE TABLE IF NOT EXISTS task_materials (
	task_id           text PRIMARY KEY,
	title             text NOT NULL DEFAULT '',
	description       text NOT NULL DEFAULT '',
	download_url      text NOT NULL,
	download_filename text NOT NULL,
	course_url        text NOT NULL
)`
