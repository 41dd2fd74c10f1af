package sqlinline

const QInsertUsageEvent = `--sql 3c742775-fb75-4e55-bbf6-a0d02c84998b
insert into usage_events (id, user_id, request_id, event_type, success, latency_ms, created_at, properties)
values (gen_random_uuid(), $1::uuid, $2::uuid, $3::text, $4::boolean, $5::int, now(), coalesce($6::jsonb, '{}'::jsonb));
`

const QStatsSummary = `--sql 5b649caf-05af-4820-b6c5-f38c41864c08
select
  (select count(*) from profiles) as total_users,
  count(*) filter (where event_type = 'TEXT_GENERATE' and success) as text_generated,
  count(*) filter (where event_type = 'IMAGE_GENERATE' and success) as image_generated,
  count(*) filter (where event_type = 'IMAGE_ANALYZE' and success) as image_analyzed,
  count(*) filter (where success) as request_success,
  count(*) filter (where not success) as request_fail,
  count(*) filter (where created_at > now() - interval '24 hours') as requests_last24
from usage_events;
`
