package sqlinline

const QSelectProfileByUserID = `--sql 3e0be036-235e-4187-8607-5a35c3557ea0
select id, tier, created_at, updated_at
from profiles
where id = $1::uuid
limit 1;
`

const QUpdateProfileTier = `--sql f719fe0f-43b4-48fc-a811-413aa53c9081
update profiles
set tier = $2::text,
    updated_at = now()
where id = $1::uuid
returning id, tier;
`

const QSelectProfileIDByEmail = `--sql 9abef378-d4ed-401f-b6ad-a4275677e2f6
select p.id
from profiles p
join auth.users u on u.id = p.id
where lower(u.email) = lower($1::text)
limit 1;
`
