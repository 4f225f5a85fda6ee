// Package query derives security-relevant views from parsed unload
// tables: privileged-user lists, empty groups, permissive dataset
// profiles, orphaned access-list entries and volume contents. Every
// query refuses to run until its engine is Ready.
package query

import (
	"errors"

	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/table"
)

// ErrNoAccessRecords is returned by Orphans when the unload carried
// neither dataset nor general access records.
var ErrNoAccessRecords = errors.New("no dataset/general access records parsed")

// RACF answers derived questions about a parsed IRRDBU00 unload.
type RACF struct {
	p *parse.RACFParser
}

func NewRACF(p *parse.RACFParser) *RACF {
	return &RACF{p: p}
}

func (q *RACF) users() (*table.Table, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	return res.Table("USBD"), nil
}

// withAttribute returns the user rows whose flag field reads YES.
func (q *RACF) withAttribute(field string) ([]table.Row, error) {
	users, err := q.users()
	if err != nil {
		return nil, err
	}
	return users.Select(func(r table.Row) bool {
		return r.Str(field) == "YES"
	}), nil
}

// Specials returns all users that have the special attribute.
func (q *RACF) Specials() ([]table.Row, error) {
	return q.withAttribute("USBD_SPECIAL")
}

// Operations returns all users that have the operations attribute.
func (q *RACF) Operations() ([]table.Row, error) {
	return q.withAttribute("USBD_OPER")
}

// Auditors returns all users that have the auditor attribute.
func (q *RACF) Auditors() ([]table.Row, error) {
	return q.withAttribute("USBD_AUDITOR")
}

// Revoked returns all users that are revoked.
func (q *RACF) Revoked() ([]table.Row, error) {
	return q.withAttribute("USBD_REVOKE")
}

// User returns the basic-data rows for a user ID, empty for an unknown
// user.
func (q *RACF) User(userid string) ([]table.Row, error) {
	users, err := q.users()
	if err != nil {
		return nil, err
	}
	return users.Select(func(r table.Row) bool {
		return r.Str("USBD_NAME") == userid
	}), nil
}

// Group returns the basic-data rows for a group name.
func (q *RACF) Group(group string) ([]table.Row, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	return res.Table("GPBD").Select(func(r table.Row) bool {
		return r.Str("GPBD_NAME") == group
	}), nil
}

// EmptyGroups returns the groups that no user is connected to.
func (q *RACF) EmptyGroups() ([]table.Row, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	connected := make(map[string]bool)
	for _, r := range res.Table("USCON").Rows {
		connected[r.Str("USCON_GRP_ID")] = true
	}
	return res.Table("GPBD").Select(func(r table.Row) bool {
		return !connected[r.Str("GPBD_NAME")]
	}), nil
}

// Dataset returns the profile rows for a dataset profile name.
func (q *RACF) Dataset(profile string) ([]table.Row, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	return res.Table("DSBD").Select(func(r table.Row) bool {
		return r.Str("DSBD_NAME") == profile
	}), nil
}

// DatasetPermit returns the access-list rows for a dataset profile name.
func (q *RACF) DatasetPermit(profile string) ([]table.Row, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	return res.Table("DSACC").Select(func(r table.Row) bool {
		return r.Str("DSACC_NAME") == profile
	}), nil
}

// UACCDatasets returns the dataset profiles whose universal access is
// the given level, like READ or ALTER. Anything above NONE deserves a
// look.
func (q *RACF) UACCDatasets(level string) ([]table.Row, error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, err
	}
	return res.Table("DSBD").Select(func(r table.Row) bool {
		return r.Str("DSBD_UACC") == level
	}), nil
}

// Orphans returns the dataset and general access-list entries whose
// authorization ID no longer exists as a user or group. The pseudo IDs
// "*" and "&RACUID" are never orphans. ErrNoAccessRecords is returned
// when the unload carried no access records at all.
func (q *RACF) Orphans() (datasetOrphans, generalOrphans []table.Row, err error) {
	res, err := q.p.Result()
	if err != nil {
		return nil, nil, err
	}
	if q.p.Parsed("DSACC")+q.p.Parsed("GRACC") == 0 {
		return nil, nil, ErrNoAccessRecords
	}

	known := make(map[string]bool)
	for _, r := range res.Table("GPBD").Rows {
		known[r.Str("GPBD_NAME")] = true
	}
	for _, r := range res.Table("USBD").Rows {
		known[r.Str("USBD_NAME")] = true
	}

	orphaned := func(authField string) func(table.Row) bool {
		return func(r table.Row) bool {
			id := r.Str(authField)
			return !known[id] && id != "*" && id != "&RACUID"
		}
	}
	if q.p.Parsed("DSACC") > 0 {
		datasetOrphans = res.Table("DSACC").Select(orphaned("DSACC_AUTH_ID"))
	}
	if q.p.Parsed("GRACC") > 0 {
		generalOrphans = res.Table("GRACC").Select(orphaned("GRACC_AUTH_ID"))
	}
	return datasetOrphans, generalOrphans, nil
}
