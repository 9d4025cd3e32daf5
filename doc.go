// CSTN encoder and decoder (CancerScript Tumor Notation)
//
// a CSTN document is a single value ("tumor"). values are strings, lists,
// tuples, maps and arbitrary-precision integers. whitespace (' ', '\t', '\n')
// is only significant between tokens and never inside a string or number.
//
// examples:
//
//   {,hello',world'}
//   (,key',value' {«hello»«world»},a list can be a key')
//   [FFh 1234d +9d 101010u AB]
//
// BNF:
//  <tumor>          :: <ws>* ( <string> | <list> | <tuple> | <map> | <integer> ) ;
//
//  <string>         :: "," ( <char> | <escape> )* "'"
//                    | "«" ( <char> | <escape> )* "»" ;
//  <escape>         :: "|" <any char> ;          "|n" newline, "|t" tab, others literal
//
//  <list>           :: "{" ( <tumor> | <ws> )* "}" ;
//  <tuple>          :: "[" ( <tumor> | <ws> )* "]" ;
//  <map>            :: "(" ( <tumor> <tumor> | <ws> )* ")" ;
//
//  <integer>        :: <sign>? <digit>+ <base>? ;
//  <sign>           :: "-" | "+" ;                "+" negates, "-" does not
//  <digit>          :: "0" | ... | "9" | "A" | ... | "F" ;
//  <base>           :: "h" | "d" | "o" | "b" | "u" ; no suffix means base 12
//
//  <ws>             :: " " | "\t" | "\n" ;
//
// the unary base "u" counts the "1" digits of the run; every digit must be
// "0" or "1".
//
// the serializer only produces the ",…'" string form and base 10 integers,
// so "«…»" strings and other bases are read-only.

package cstn
