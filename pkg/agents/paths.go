package agents

import "path/filepath"

// jobTempDir is the per-job scratch directory under the configured temp root.
func (p *Pipeline) jobTempDir(jobID string) string {
	return filepath.Join(p.cfg.Server.TempDir, jobID)
}

// mediaURL converts an absolute output path into the /media URL the gateway
// serves it under.
func (p *Pipeline) mediaURL(videoPath string) string {
	rel, err := filepath.Rel(p.cfg.Server.MediaDir, videoPath)
	if err != nil || rel == "" || rel[0] == '.' {
		rel = filepath.Base(videoPath)
	}
	return "/media/" + filepath.ToSlash(rel)
}
