package projections

import (
	"factguard-backend/domain/events"
)

func (p *Projector) handleNewsPublished(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.NewsPublishedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	// Engagement counters start at zero; incrementing them belongs to
	// future view/share events.
	article := &NewsView{
		ID:          pl.ArticleID,
		Headline:    pl.Headline,
		Source:      pl.Source,
		URL:         pl.URL,
		Views:       0,
		Shares:      0,
		PublishedAt: ev.Timestamp,
	}

	return []Delta{
		newDelta("news.upsert", func(d *viewData) {
			d.news[article.ID] = article
		}),
	}, nil
}

func (p *Projector) handleAdminActionPerformed(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.AdminActionPerformedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	entry := &AuditEntryView{
		ID:        pl.ActionID,
		AdminID:   pl.AdminID,
		Action:    pl.Action,
		TargetID:  pl.TargetID,
		Detail:    pl.Detail,
		Timestamp: ev.Timestamp,
	}

	return []Delta{
		newDelta("auditLog.upsert", func(d *viewData) {
			d.auditLog[entry.ID] = entry
		}),
	}, nil
}

func (p *Projector) handleAlertCreated(ev events.Envelope, r ViewReader) ([]Delta, error) {
	var pl events.AlertCreatedPayload
	if err := p.decode(ev, &pl); err != nil {
		return nil, err
	}

	alert := &AlertView{
		ID:        pl.AlertID,
		Severity:  pl.Severity,
		Message:   pl.Message,
		Status:    events.AlertStatusActive,
		CreatedAt: ev.Timestamp,
	}

	return []Delta{
		newDelta("alerts.upsert", func(d *viewData) {
			d.alerts[alert.ID] = alert
		}),
	}, nil
}
