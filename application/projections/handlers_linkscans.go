package projections

import (
	"factguard-backend/domain/events"
)

func (p *Projector) handleLinkScanRequested(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.LinkScanRequestedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	scan := &LinkScanView{
		ID:          pl.ScanID,
		URL:         pl.URL,
		Status:      events.ScanStatusRequested,
		RequestedBy: pl.RequestedBy,
		RequestedAt: ev.Timestamp,
	}

	return []Delta{
		newDelta("linkScans.upsert", func(d *viewData) {
			d.linkScans[scan.ID] = scan
		}),
	}, nil
}

// handleLinkScanCompleted merges the scan result into the record created
// by the requested phase. A completion with no prior request is a no-op:
// the second phase never creates a record retroactively.
func (p *Projector) handleLinkScanCompleted(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.LinkScanCompletedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	if _, ok := r.LinkScan(pl.ScanID); !ok {
		return nil, nil
	}

	return []Delta{
		newDelta("linkScans.complete", func(d *viewData) {
			scan, ok := d.linkScans[pl.ScanID]
			if !ok {
				return
			}
			scan.Status = events.ScanStatusCompleted
			scan.Verdict = pl.Verdict
			scan.Score = pl.Score
			scan.CompletedAt = ev.Timestamp
		}),
	}, nil
}
