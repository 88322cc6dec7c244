package migrations

import "gorm.io/gorm"

// migration004Up creates the process_scan function, the atomic award
// operation behind every QR scan.
//
// The function owns all award semantics for one (actor, event, code) triple:
// it decides whether the code denotes an activity of the event or another
// user's identifier, and relies on the unique indexes over scans and
// connections for first-write-wins idempotency, so concurrent repeated scans
// can never double-award. The API layer only resolves which event and code
// to pass in and reports the returned verdict verbatim.
func migration004Up(db *gorm.DB) error {
	return db.Exec(`
CREATE OR REPLACE FUNCTION process_scan(p_user_id uuid, p_event_id uuid, p_code text)
RETURNS jsonb
LANGUAGE plpgsql
AS $$
DECLARE
    v_activity activities%ROWTYPE;
    v_target   profiles%ROWTYPE;
    v_rows     integer;
BEGIN
    -- Activity scan: codes are unique within one event.
    SELECT * INTO v_activity
    FROM activities
    WHERE event_id = p_event_id AND identifier::text = lower(p_code)
    LIMIT 1;

    IF FOUND THEN
        INSERT INTO scans (user_id, event_id, qrcode_identifier, type, created_at)
        VALUES (p_user_id, p_event_id, lower(p_code), v_activity.type, now())
        ON CONFLICT DO NOTHING;
        GET DIAGNOSTICS v_rows = ROW_COUNT;

        IF v_rows = 0 THEN
            RETURN jsonb_build_object(
                'success', false,
                'message', 'Você já escaneou esse código.');
        END IF;

        INSERT INTO user_event_points (user_id, event_id, points)
        VALUES (p_user_id, p_event_id, v_activity.points)
        ON CONFLICT (user_id, event_id)
        DO UPDATE SET points = user_event_points.points + EXCLUDED.points;

        RETURN jsonb_build_object(
            'success', true,
            'message', 'Pontos adicionados!',
            'points', v_activity.points,
            'name', v_activity.name);
    END IF;

    -- User scan: dedicated qr_identifier first, primary id as the legacy
    -- fallback.
    SELECT * INTO v_target FROM profiles WHERE qr_identifier::text = lower(p_code);
    IF NOT FOUND THEN
        SELECT * INTO v_target FROM profiles WHERE id::text = lower(p_code);
    END IF;

    IF v_target.id IS NOT NULL THEN
        IF v_target.id = p_user_id THEN
            RETURN jsonb_build_object(
                'success', false,
                'message', 'Você não pode escanear seu próprio código.');
        END IF;

        INSERT INTO connections (user_id, connected_user_id, event_id, created_at)
        VALUES (p_user_id, v_target.id, p_event_id, now())
        ON CONFLICT DO NOTHING;
        GET DIAGNOSTICS v_rows = ROW_COUNT;

        IF v_rows = 0 THEN
            RETURN jsonb_build_object(
                'success', false,
                'message', 'Você já se conectou com essa pessoa.');
        END IF;

        -- Connections are awarded symmetrically: both sides get the edge
        -- and the points.
        INSERT INTO connections (user_id, connected_user_id, event_id, created_at)
        VALUES (v_target.id, p_user_id, p_event_id, now())
        ON CONFLICT DO NOTHING;

        INSERT INTO user_event_points (user_id, event_id, points)
        VALUES (p_user_id, p_event_id, 5), (v_target.id, p_event_id, 5)
        ON CONFLICT (user_id, event_id)
        DO UPDATE SET points = user_event_points.points + EXCLUDED.points;

        RETURN jsonb_build_object(
            'success', true,
            'message', 'Conexão realizada!',
            'points', 5,
            'name', v_target.full_name);
    END IF;

    RETURN jsonb_build_object(
        'success', false,
        'message', 'Este QRCode não pertence a esse app');
END;
$$
    `).Error
}

// migration004Down drops the process_scan function
func migration004Down(db *gorm.DB) error {
	return db.Exec("DROP FUNCTION IF EXISTS process_scan(uuid, uuid, text)").Error
}
