package dataset

// Query names used in logs and errors.
const (
	queryList    = "list"
	queryDisks   = "disks"
	queryRegions = "regions"
)

// listQuery returns one row per instance type, outer joined against prices so
// types without any price rows still appear with a NULL minimum.
const listQuery = `
SELECT
    t.instanceType,
    t.vCpus,
    t.memorySizeInMiB,
    t.storage,
    t.networkPerformance,
    MIN(p.onDemandLinuxHr) AS onDemandLinuxHr
FROM
    "instance-types" t
LEFT JOIN
    "instance-shared-prices" p ON t.instanceType = p.instanceType
GROUP BY
    t.instanceType
ORDER BY
    t.instanceType;
`

const disksQuery = `
SELECT
    d.instanceType,
    d."count",
    d.sizeInGB,
    d."type"
FROM
    "instance-disks" d;
`

const regionsQuery = `
SELECT DISTINCT
    p.location AS location
FROM
    "instance-shared-prices" p
WHERE
    p.instanceType = ?
ORDER BY
    p.location;
`
