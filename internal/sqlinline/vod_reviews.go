package sqlinline

const QInsertVodReview = `--sql 8a5950b9-348e-46a4-8ff1-0ec4b034ad9d
insert into vod_reviews (id, user_id, video_url, notes, status, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, now())
returning id, created_at;
`
