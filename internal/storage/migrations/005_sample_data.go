package migrations

import "gorm.io/gorm"

// migration005Up inserts a demo event with a couple of activities so a fresh
// install has something to scan.
func migration005Up(db *gorm.DB) error {
	statements := []string{
		`INSERT INTO events (id, name, slug, description, start_date, end_date, created_at, updated_at)
        VALUES (
            '6f1b24a0-9c1d-4c61-b5b3-0d8f5f3f9a01',
            'Conexa Demo',
            'conexa-demo',
            'Evento de demonstração',
            now() - interval '1 day',
            now() + interval '30 days',
            now(), now())
        ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO activities (id, event_id, type, name, description, points, identifier, created_at, updated_at)
        VALUES
            ('a3de5c2b-41f7-4f7e-8f08-2c6a1f9b1d11',
             '6f1b24a0-9c1d-4c61-b5b3-0d8f5f3f9a01',
             'mission', 'Check-in', 'Faça o check-in no evento', 10,
             'b7c4f1de-6a02-4b3c-9a4f-efc0a8a3d002', now(), now()),
            ('c9b86f4a-2d15-4f3b-9c7e-5a1e2b8c3d22',
             '6f1b24a0-9c1d-4c61-b5b3-0d8f5f3f9a01',
             'hidden_point', 'Ponto secreto', 'Encontre o QR escondido', 25,
             'd1e2f3a4-b5c6-4d7e-8f90-123456789abc', now(), now())
        ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration005Down removes the demo data
func migration005Down(db *gorm.DB) error {
	statements := []string{
		`DELETE FROM activities WHERE event_id = '6f1b24a0-9c1d-4c61-b5b3-0d8f5f3f9a01'`,
		`DELETE FROM events WHERE id = '6f1b24a0-9c1d-4c61-b5b3-0d8f5f3f9a01'`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
